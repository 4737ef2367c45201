// Package chat maintains an in-memory conversation with the research
// backend. One request is in flight at a time; history is transcript
// state, not a persistence concern.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/stonklab/stonk/internal/analytics"
	"github.com/stonklab/stonk/internal/api"
)

// FallbackReply is shown as the assistant turn when the backend call
// fails and the session is not configured for error-role turns.
const FallbackReply = "I'm having trouble connecting right now. Please try again in a moment!"

// ErrBusy rejects a Send while a previous one is still in flight.
var ErrBusy = errors.New("a message is already being sent")

// Role tags a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleError     Role = "error"
)

// Message is one transcript entry.
type Message struct {
	Role Role
	Text string
	At   time.Time
}

// Sender is the backend call the session depends on.
type Sender interface {
	Chat(ctx context.Context, ticker, question string) (*api.ChatResult, error)
}

// Session holds an ordered transcript and a busy flag. With ErrorRole set,
// failures append a distinct error turn instead of the fallback reply; the
// research-embedded chat uses that mode.
type Session struct {
	mu        sync.Mutex
	client    Sender
	tracker   *analytics.Emitter
	messages  []Message
	busy      bool
	ErrorRole bool
}

// NewSession creates an empty session.
func NewSession(client Sender, tracker *analytics.Emitter) *Session {
	return &Session{client: client, tracker: tracker}
}

// Send appends the user's question, calls the backend, and appends the
// reply. Blank messages are ignored without any network call. On backend
// failure the transcript still gets a turn (fallback or error role) and
// the error is returned for the caller's own reporting.
func (s *Session) Send(ctx context.Context, ticker, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.busy = true
	s.messages = append(s.messages, Message{Role: RoleUser, Text: text, At: time.Now()})
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	result, err := s.client.Chat(ctx, ticker, text)
	if err != nil {
		reply := FallbackReply
		role := RoleAssistant
		if s.ErrorRole {
			reply = "Sorry, I couldn't process that. Please try again."
			role = RoleError
		}
		s.append(Message{Role: role, Text: reply, At: time.Now()})
		s.tracker.TrackError(err, map[string]interface{}{"feature": "chat", "ticker": ticker})
		return reply, err
	}

	s.append(Message{Role: RoleAssistant, Text: result.Response, At: time.Now()})
	s.tracker.FeatureUse("chat", map[string]interface{}{"ticker": ticker})
	return result.Response, nil
}

// Busy reports whether a Send is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Messages returns a copy of the transcript in order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear drops the transcript, e.g. when the researched ticker changes.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

func (s *Session) append(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

// Package analytics implements best-effort usage telemetry. Events are
// enriched with a persisted anonymous user id and a per-run session id,
// then posted fire-and-forget; failures are logged locally and never reach
// the caller.
package analytics

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stonklab/stonk/internal/api"
	"github.com/stonklab/stonk/internal/logger"
	"github.com/stonklab/stonk/internal/store"
)

// sendTimeout bounds each delivery independently of the client's blanket
// request timeout; telemetry should never hold up shutdown.
const sendTimeout = 5 * time.Second

// Sink is the delivery half of the api client needed by the emitter.
type Sink interface {
	PostAnalyticsEvent(ctx context.Context, event api.AnalyticsEvent) error
}

// Emitter tracks client events. Construct once at startup and pass down;
// a nil *Emitter is a safe no-op so call sites never need to guard.
type Emitter struct {
	sink      Sink
	userID    string
	sessionID string
	version   string

	wg      sync.WaitGroup
	enabled bool
}

// New creates an emitter. The anonymous user id is read from the store and
// created on first use; the session id is fresh for every process.
func New(sink Sink, st *store.Store, version string, enabled bool) *Emitter {
	return &Emitter{
		sink:      sink,
		userID:    loadOrCreateUserID(st),
		sessionID: fmt.Sprintf("session_%s", uuid.NewString()),
		version:   version,
		enabled:   enabled,
	}
}

func loadOrCreateUserID(st *store.Store) string {
	if st != nil {
		if id := st.GetString(store.KeyUserID); id != "" {
			return id
		}
	}
	id := fmt.Sprintf("user_%s", uuid.NewString())
	if st != nil {
		if err := st.Set(store.KeyUserID, id); err != nil {
			logger.Debug("persist analytics user id: %v", err)
		}
	}
	return id
}

// Track sends one event in the background. It never blocks on the network
// and never returns an error.
func (e *Emitter) Track(name string, fields map[string]interface{}) {
	if e == nil || !e.enabled || e.sink == nil {
		return
	}

	event := api.AnalyticsEvent{
		Event:     name,
		UserID:    e.userID,
		SessionID: e.sessionID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Version:   e.version,
		Fields:    fields,
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := e.sink.PostAnalyticsEvent(ctx, event); err != nil {
			logger.Debug("analytics delivery failed: %v", err)
		}
	}()
}

// PageView records that a screen was shown.
func (e *Emitter) PageView(page string) {
	e.Track("page_view", map[string]interface{}{"page": page})
}

// StockAnalysis records a guided research step run.
func (e *Emitter) StockAnalysis(ticker, step string, success bool) {
	e.Track("stock_analysis", map[string]interface{}{
		"ticker":  ticker,
		"step":    step,
		"success": success,
	})
}

// FeatureUse records use of a named feature.
func (e *Emitter) FeatureUse(feature string, fields map[string]interface{}) {
	merged := map[string]interface{}{"feature": feature}
	for k, v := range fields {
		merged[k] = v
	}
	e.Track("feature_use", merged)
}

// TrackError records a client-side failure.
func (e *Emitter) TrackError(err error, fields map[string]interface{}) {
	merged := map[string]interface{}{}
	if err != nil {
		merged["error"] = err.Error()
	}
	for k, v := range fields {
		merged[k] = v
	}
	e.Track("error", merged)
}

// SettingsChange records a settings mutation.
func (e *Emitter) SettingsChange(setting string, value interface{}) {
	e.Track("settings_change", map[string]interface{}{
		"setting": setting,
		"value":   value,
	})
}

// SessionEnd marks the end of the session; call before Close on exit.
func (e *Emitter) SessionEnd() {
	e.Track("session_end", nil)
}

// Close waits briefly for in-flight deliveries.
func (e *Emitter) Close() {
	if e == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(sendTimeout):
	}
}

// Package watchlist keeps the user's tracked tickers in the local store,
// mirroring the shape the web client kept under its local-storage key.
package watchlist

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stonklab/stonk/internal/store"
)

// ErrDuplicate is returned when a ticker is already on the list.
var ErrDuplicate = errors.New("ticker already on watchlist")

// Entry is one tracked ticker. LastAnalyzed is nil until the first
// completed guided research run for the ticker.
type Entry struct {
	Ticker       string     `json:"ticker"`
	AddedAt      time.Time  `json:"added_at"`
	LastAnalyzed *time.Time `json:"last_analyzed,omitempty"`
}

// List wraps the store key holding the watchlist. Every mutation persists
// immediately.
type List struct {
	store *store.Store
}

// NewList loads the watchlist view over the given store.
func NewList(s *store.Store) *List {
	return &List{store: s}
}

// Entries returns the watchlist sorted by ticker. A missing or corrupt
// stored value yields an empty list.
func (l *List) Entries() []Entry {
	var entries []Entry
	l.store.Get(store.KeyWatchlist, &entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Ticker < entries[j].Ticker })
	return entries
}

// Tickers returns just the symbols, sorted.
func (l *List) Tickers() []string {
	entries := l.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Ticker
	}
	return out
}

// Contains reports whether the ticker is already tracked. Comparison is
// case-insensitive.
func (l *List) Contains(ticker string) bool {
	ticker = normalize(ticker)
	for _, e := range l.Entries() {
		if e.Ticker == ticker {
			return true
		}
	}
	return false
}

// Add tracks a new ticker. Symbols are trimmed and uppercased before
// storing, so "aapl" and "AAPL" are the same entry. Empty input is
// silently ignored.
func (l *List) Add(ticker string) error {
	ticker = normalize(ticker)
	if ticker == "" {
		return nil
	}

	entries := l.Entries()
	for _, e := range entries {
		if e.Ticker == ticker {
			return fmt.Errorf("%s: %w", ticker, ErrDuplicate)
		}
	}
	entries = append(entries, Entry{Ticker: ticker, AddedAt: time.Now().UTC()})
	return l.store.Set(store.KeyWatchlist, entries)
}

// Remove drops a ticker. Removing a ticker that is not tracked is a no-op.
func (l *List) Remove(ticker string) error {
	ticker = normalize(ticker)
	entries := l.Entries()
	kept := entries[:0]
	for _, e := range entries {
		if e.Ticker != ticker {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return l.store.Set(store.KeyWatchlist, kept)
}

// MarkAnalyzed stamps the ticker's last completed research time. Unknown
// tickers are ignored.
func (l *List) MarkAnalyzed(ticker string, at time.Time) error {
	ticker = normalize(ticker)
	entries := l.Entries()
	changed := false
	for i := range entries {
		if entries[i].Ticker == ticker {
			at := at.UTC()
			entries[i].LastAnalyzed = &at
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return l.store.Set(store.KeyWatchlist, entries)
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

package watchlist

import (
	"errors"
	"testing"
	"time"

	"github.com/stonklab/stonk/internal/store"
)

func newTestList(t *testing.T) *List {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return NewList(s)
}

func TestAddNormalizesAndDeduplicates(t *testing.T) {
	l := newTestList(t)

	if err := l.Add("  aapl "); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := l.Add("AAPL"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate add: err = %v, want ErrDuplicate", err)
	}

	got := l.Tickers()
	if len(got) != 1 || got[0] != "AAPL" {
		t.Fatalf("tickers = %v, want [AAPL]", got)
	}
}

func TestAddEmptyIgnored(t *testing.T) {
	l := newTestList(t)
	if err := l.Add("   "); err != nil {
		t.Fatalf("Add blank: %v", err)
	}
	if len(l.Entries()) != 0 {
		t.Fatal("blank ticker must not be stored")
	}
}

func TestEntriesSorted(t *testing.T) {
	l := newTestList(t)
	for _, ticker := range []string{"MSFT", "AAPL", "GOOG"} {
		if err := l.Add(ticker); err != nil {
			t.Fatalf("Add %s: %v", ticker, err)
		}
	}
	got := l.Tickers()
	want := []string{"AAPL", "GOOG", "MSFT"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tickers = %v, want %v", got, want)
		}
	}
}

func TestRemove(t *testing.T) {
	l := newTestList(t)
	if err := l.Add("AAPL"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := l.Remove("aapl"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if l.Contains("AAPL") {
		t.Fatal("AAPL still tracked after remove")
	}
	if err := l.Remove("AAPL"); err != nil {
		t.Fatalf("removing a missing ticker must be a no-op, got %v", err)
	}
}

func TestMarkAnalyzed(t *testing.T) {
	l := newTestList(t)
	if err := l.Add("AAPL"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	entries := l.Entries()
	if entries[0].LastAnalyzed != nil {
		t.Fatal("new entry must have no analysis timestamp")
	}

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := l.MarkAnalyzed("aapl", at); err != nil {
		t.Fatalf("MarkAnalyzed: %v", err)
	}
	entries = l.Entries()
	if entries[0].LastAnalyzed == nil || !entries[0].LastAnalyzed.Equal(at) {
		t.Fatalf("last analyzed = %v, want %v", entries[0].LastAnalyzed, at)
	}

	if err := l.MarkAnalyzed("TSLA", at); err != nil {
		t.Fatalf("marking an untracked ticker must be a no-op, got %v", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Open(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := NewList(s).Add("AAPL"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	reopened, err := store.Open(dir)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	if !NewList(reopened).Contains("AAPL") {
		t.Fatal("watchlist lost across reopen")
	}
}

// Package quote fetches a price snapshot straight from Yahoo Finance.
// It is the fallback path when the research backend is unreachable; the
// Source field tells the caller (and the UI) which path produced a price.
package quote

import (
	"fmt"
	"strings"
	"time"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// SourceDirect marks snapshots fetched from Yahoo Finance rather than the
// research backend.
const SourceDirect = "direct"

// Snapshot is a point-in-time price for a single symbol.
type Snapshot struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Currency      string          `json:"currency"`
	MarketState   string          `json:"market_state"`
	Source        string          `json:"source"`
	FetchedAt     time.Time       `json:"fetched_at"`
}

// Get fetches the current quote for symbol directly from Yahoo Finance.
func Get(symbol string) (*Snapshot, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol cannot be empty")
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	return &Snapshot{
		Symbol:        symbol,
		Name:          q.ShortName,
		Price:         decimal.NewFromFloat(q.RegularMarketPrice),
		Change:        decimal.NewFromFloat(q.RegularMarketChange),
		ChangePercent: decimal.NewFromFloat(q.RegularMarketChangePercent),
		Currency:      q.CurrencyID,
		MarketState:   string(q.MarketState),
		Source:        SourceDirect,
		FetchedAt:     time.Now(),
	}, nil
}

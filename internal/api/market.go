package api

import (
	"context"
	"fmt"
	"strings"
)

// Price fetches the current quote for one ticker.
func (c *Client) Price(ctx context.Context, ticker string) (*Quote, error) {
	var quote Quote
	path := fmt.Sprintf("/api/stock/price/%s", strings.ToUpper(ticker))
	if err := c.get(ctx, path, nil, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// Chart fetches historical chart data. Timeframe defaults to 1M when empty.
func (c *Client) Chart(ctx context.Context, ticker, timeframe string) (*Chart, error) {
	if timeframe == "" {
		timeframe = "1M"
	}
	var chart Chart
	path := fmt.Sprintf("/api/stock/chart/%s", strings.ToUpper(ticker))
	if err := c.get(ctx, path, map[string]string{"timeframe": timeframe}, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}

// MarketOverview fetches indices, movers, and sectors for one country.
func (c *Client) MarketOverview(ctx context.Context, country string) (*MarketOverview, error) {
	query := map[string]string{}
	if country != "" {
		query["country"] = country
	}
	var overview MarketOverview
	if err := c.get(ctx, "/api/market/overview", query, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// MarketCountries lists the markets the overview endpoint supports.
func (c *Client) MarketCountries(ctx context.Context) ([]Country, error) {
	var payload struct {
		Countries []Country `json:"countries"`
	}
	if err := c.get(ctx, "/api/market/countries", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Countries, nil
}

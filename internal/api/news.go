package api

import (
	"context"
	"strconv"
)

// WatchlistNews fetches recent articles grouped by watchlist ticker.
func (c *Client) WatchlistNews(ctx context.Context, limitPerStock int) (map[string][]NewsItem, error) {
	query := map[string]string{}
	if limitPerStock > 0 {
		query["limit_per_stock"] = strconv.Itoa(limitPerStock)
	}
	var payload struct {
		News map[string][]NewsItem `json:"news"`
	}
	if err := c.get(ctx, "/api/news/watchlist", query, &payload); err != nil {
		return nil, err
	}
	return payload.News, nil
}

// RefreshNews asks the backend to re-aggregate watchlist news.
func (c *Client) RefreshNews(ctx context.Context) error {
	return c.post(ctx, "/api/news/refresh", nil, nil)
}

// PortfolioSentiment fetches aggregated social sentiment per ticker.
func (c *Client) PortfolioSentiment(ctx context.Context) (map[string]TickerSentiment, error) {
	var payload struct {
		Sentiment map[string]TickerSentiment `json:"sentiment"`
	}
	if err := c.get(ctx, "/api/sentiment/portfolio", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Sentiment, nil
}

// RefreshSentiment asks the backend to re-aggregate social sentiment.
func (c *Client) RefreshSentiment(ctx context.Context) error {
	return c.post(ctx, "/api/sentiment/refresh", nil, nil)
}

package api

import (
	"context"
	"fmt"
)

// Portfolio fetches the authenticated user's holdings.
func (c *Client) Portfolio(ctx context.Context) ([]Holding, error) {
	var payload struct {
		Holdings []Holding `json:"holdings"`
	}
	if err := c.get(ctx, "/api/portfolio", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Holdings, nil
}

// PortfolioSummary fetches holdings enriched with current prices plus the
// aggregate valuation.
func (c *Client) PortfolioSummary(ctx context.Context) (*Portfolio, error) {
	var portfolio Portfolio
	if err := c.get(ctx, "/api/portfolio/summary", nil, &portfolio); err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// AddHolding adds a position and returns its id.
func (c *Client) AddHolding(ctx context.Context, holding NewHolding) (int64, error) {
	var payload struct {
		HoldingID int64 `json:"holding_id"`
	}
	if err := c.post(ctx, "/api/portfolio", holding, &payload); err != nil {
		return 0, err
	}
	return payload.HoldingID, nil
}

// DeleteHolding removes a position by id.
func (c *Client) DeleteHolding(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/portfolio/%d", id), nil)
}

// PortfolioDoctor fetches the daily health check and recommendations.
func (c *Client) PortfolioDoctor(ctx context.Context) (*DoctorReport, error) {
	var report DoctorReport
	if err := c.get(ctx, "/api/portfolio/doctor", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Rebalance fetches the suggested rebalancing plan.
func (c *Client) Rebalance(ctx context.Context) (*RebalancePlan, error) {
	var plan RebalancePlan
	if err := c.get(ctx, "/api/portfolio/rebalance", nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Insights fetches generated portfolio observations.
func (c *Client) Insights(ctx context.Context) (*InsightsReport, error) {
	var report InsightsReport
	if err := c.get(ctx, "/api/portfolio/insights", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

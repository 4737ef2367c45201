package api

import (
	"context"
	"fmt"
)

// Alerts fetches the user's configured price alerts.
func (c *Client) Alerts(ctx context.Context) ([]Alert, error) {
	var payload struct {
		Alerts []Alert `json:"alerts"`
	}
	if err := c.get(ctx, "/api/alerts", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Alerts, nil
}

// CreateAlert registers a new price alert and returns its id.
func (c *Client) CreateAlert(ctx context.Context, alert NewAlert) (int64, error) {
	var payload struct {
		AlertID int64 `json:"alert_id"`
	}
	if err := c.post(ctx, "/api/alerts", alert, &payload); err != nil {
		return 0, err
	}
	return payload.AlertID, nil
}

// DeleteAlert removes an alert by id.
func (c *Client) DeleteAlert(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/alerts/%d", id), nil)
}

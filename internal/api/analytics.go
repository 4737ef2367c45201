package api

import (
	"context"
	"encoding/json"
)

// MarshalJSON flattens the event-specific fields into the top-level object,
// matching the shape the analytics sink expects.
func (e AnalyticsEvent) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(e.Fields)+6)
	for k, v := range e.Fields {
		flat[k] = v
	}
	flat["event"] = e.Event
	flat["userId"] = e.UserID
	flat["sessionId"] = e.SessionID
	flat["timestamp"] = e.Timestamp
	if e.Platform != "" {
		flat["platform"] = e.Platform
	}
	if e.Version != "" {
		flat["version"] = e.Version
	}
	return json.Marshal(flat)
}

// PostAnalyticsEvent delivers one telemetry event. Callers treat failures
// as best-effort; nothing user-facing depends on this call.
func (c *Client) PostAnalyticsEvent(ctx context.Context, event AnalyticsEvent) error {
	return c.post(ctx, "/api/analytics", event, nil)
}

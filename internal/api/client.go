// Package api is the typed HTTP client for the research backend. Every
// endpoint gets an explicit request/response type; malformed responses are
// reported as decode errors rather than leaking zero values into rendering.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/stonklab/stonk/internal/logger"
)

// ErrDecode marks responses that were 2xx but did not match the expected
// shape.
var ErrDecode = errors.New("malformed response from backend")

// Error is a backend-reported failure. Message carries the backend's
// "error" field verbatim when present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// TokenSource supplies the bearer token for authenticated endpoints. An
// empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token TokenSource, mostly for tests.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client wraps a resty client pointed at the backend base URL.
type Client struct {
	http   *resty.Client
	tokens TokenSource
}

// NewClient creates a backend client with the blanket request timeout.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")

	if tokens == nil {
		tokens = StaticToken("")
	}

	return &Client{
		http:   client,
		tokens: tokens,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, query, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, nil, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, nil, out)
}

func (c *Client) delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, query map[string]string, out interface{}) error {
	req := c.http.R().SetContext(ctx)

	if token := c.tokens.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if !resp.IsSuccess() {
		return errorFromResponse(resp)
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			logger.Debug("decode failure for %s %s: %v", method, path, err)
			return fmt.Errorf("%s %s: %w", method, path, ErrDecode)
		}
	}

	return nil
}

// errorFromResponse surfaces the backend's error field verbatim when it
// exists, else a generic status-based message.
func errorFromResponse(resp *resty.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err == nil && payload.Error != "" {
		return &Error{Status: resp.StatusCode(), Message: payload.Error}
	}
	return &Error{Status: resp.StatusCode()}
}

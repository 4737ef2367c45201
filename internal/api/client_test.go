package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, StaticToken("test-token"))
}

func TestGuidedStepSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/research/guided" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer token header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"step": "overview",
			"ticker": "AAPL",
			"response": "Apple designs consumer electronics.",
			"citations": ["https://example.com/a", "https://example.com/b"],
			"cached": false
		}`))
	}))

	result, err := client.GuidedStep(context.Background(), "overview", "AAPL", "1-3 years", "moderate")
	if err != nil {
		t.Fatalf("GuidedStep: %v", err)
	}
	if result.Response != "Apple designs consumer electronics." {
		t.Fatalf("unexpected response text: %q", result.Response)
	}
	if len(result.Citations) != 2 {
		t.Fatalf("expected 2 citations, got %d", len(result.Citations))
	}
}

func TestBackendErrorSurfacedVerbatim(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Ticker is required"}`))
	}))

	_, err := client.GuidedStep(context.Background(), "overview", "", "1-3 years", "moderate")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Message != "Ticker is required" {
		t.Fatalf("expected backend message verbatim, got %q", apiErr.Message)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", apiErr.Status)
	}
}

func TestNonJSONErrorFallsBackToGenericMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))

	_, err := client.Chat(context.Background(), "AAPL", "what happened")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Message != "" {
		t.Fatalf("expected empty message for non-JSON body, got %q", apiErr.Message)
	}
	if apiErr.Error() != "request failed with status 502" {
		t.Fatalf("unexpected error string: %q", apiErr.Error())
	}
}

func TestMalformedSuccessBodyIsDecodeError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))

	_, err := client.Templates(context.Background())
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestUnauthenticatedRequestOmitsHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no auth header, got %q", got)
		}
		w.Write([]byte(`{"templates": {}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)
	if _, err := client.Templates(context.Background()); err != nil {
		t.Fatalf("Templates: %v", err)
	}
}

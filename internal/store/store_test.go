package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetGetRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Set(KeyAuthToken, "tok-123"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := s.GetString(KeyAuthToken); got != "tok-123" {
		t.Fatalf("expected tok-123, got %q", got)
	}

	type user struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := s.Set(KeyUser, user{Email: "a@b.com", Name: "A"}); err != nil {
		t.Fatalf("Set user: %v", err)
	}
	var u user
	if !s.Get(KeyUser, &u) {
		t.Fatalf("user not found")
	}
	if u.Email != "a@b.com" {
		t.Fatalf("expected a@b.com, got %s", u.Email)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(KeyUserID, "user_abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.GetString(KeyUserID); got != "user_abc" {
		t.Fatalf("expected user_abc after reopen, got %q", got)
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(KeyAuthToken, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Remove(KeyAuthToken); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := s.GetString(KeyAuthToken); got != "" {
		t.Fatalf("expected empty token after remove, got %q", got)
	}
	// removing twice is fine
	if err := s.Remove(KeyAuthToken); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "state.json")); err != nil {
		t.Fatalf("state file missing: %v", err)
	}
}

func TestGetMissingKey(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var v string
	if s.Get("nope", &v) {
		t.Fatalf("expected miss for unknown key")
	}
}

package cli

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateStringShortUnchanged(t *testing.T) {
	if got := truncateString("AAPL", 10); got != "AAPL" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncateStringLong(t *testing.T) {
	got := truncateString(strings.Repeat("x", 50), 20)
	if got != strings.Repeat("x", 17)+"..." {
		t.Fatalf("got %q", got)
	}
}

func TestTruncateStringMultibyte(t *testing.T) {
	got := truncateString(strings.Repeat("値", 50), 20)
	if !utf8.ValidString(got) {
		t.Fatalf("not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 20 {
		t.Fatalf("rune count = %d, want 20", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("got %q, want ... suffix", got)
	}
}

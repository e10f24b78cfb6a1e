package providers

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestStatusErrorStringAndTemporary(t *testing.T) {
	err := &StatusError{Provider: "yahoo", StatusCode: 503, Body: "  down  "}
	if got := err.Error(); got != "yahoo: unexpected status 503: down" {
		t.Fatalf("unexpected message %q", got)
	}
	if !err.Temporary() {
		t.Fatalf("expected 503 to be temporary")
	}

	long := &StatusError{Provider: "yahoo", StatusCode: 400, Body: strings.Repeat("x", 500)}
	if long.Temporary() {
		t.Fatalf("expected 400 to be permanent")
	}
	if len(long.Error()) > 260 {
		t.Fatalf("expected body to be truncated, got %d chars", len(long.Error()))
	}

	bare := &StatusError{Provider: "nhle", StatusCode: 404}
	if got := bare.Error(); got != "nhle: unexpected status 404" {
		t.Fatalf("unexpected message %q", got)
	}

	if _, ok := AsStatusError(fmt.Errorf("ctx: %w", bare)); !ok {
		t.Fatalf("expected to unwrap status error")
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := ParseRetryAfter("7"); got != 7*time.Second {
		t.Fatalf("expected 7s, got %v", got)
	}
	for _, in := range []string{"", "soon", "-3", "0"} {
		if got := ParseRetryAfter(in); got != 0 {
			t.Fatalf("expected 0 for %q, got %v", in, got)
		}
	}
}

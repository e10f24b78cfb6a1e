package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
)

func TestRateLimitedProviderAllowsFirstCall(t *testing.T) {
	fp := &flakeyTeamProvider{}
	p := NewRateLimitedProvider(fp, "yahoo", time.Hour, nil)

	if _, err := p.FetchRoster(context.Background(), "team"); err != nil {
		t.Fatalf("expected first call to pass, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected delegate call, got %d", fp.calls)
	}
}

func TestRateLimitedProviderBlocksUntilContextEnds(t *testing.T) {
	fp := &flakeyTeamProvider{}
	p := NewRateLimitedProvider(fp, "yahoo", time.Hour, nil)
	_, _ = p.FetchRoster(context.Background(), "team")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	status, _, err := p.SubmitLineup(ctx, "team", "2024-01-01", lineup.NewAssignment(lineup.DefaultSlots()))
	if err == nil || status != 0 {
		t.Fatalf("expected limiter wait to fail, got status=%d err=%v", status, err)
	}
	if fp.submissions != 0 {
		t.Fatalf("expected submission to be skipped")
	}
}

func TestRateLimitedProviderNilDelegate(t *testing.T) {
	p := NewRateLimitedProvider(nil, "yahoo", 0, nil)
	if _, err := p.FetchRoster(context.Background(), "team"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

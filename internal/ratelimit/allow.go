package ratelimit

import (
	"context"
	"time"
)

// AllowAll permits every attempt. It is the development fallback used when
// no shared store is configured and must never run in production.
type AllowAll struct {
	Policy Policy
}

func (a AllowAll) Limit(_ context.Context, _ string) (Result, error) {
	return Result{
		Allowed:   true,
		Limit:     a.Policy.Max,
		Remaining: a.Policy.Max,
		Reset:     time.Now().Add(a.Policy.Window),
	}, nil
}

func (AllowAll) Authoritative() bool { return false }

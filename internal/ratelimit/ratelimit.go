// Package ratelimit decides whether a client may submit the contact form.
//
// The policy is a sliding window: at most Policy.Max accepted attempts per
// identifier within the trailing Policy.Window. Denied attempts are not
// counted. Shared-store strategies (Redis, Postgres) perform the check and
// the increment atomically inside the store; the in-process strategies are
// meant for local development only and report Authoritative() == false.
package ratelimit

import (
	"context"
	"time"
)

// DefaultPrefix namespaces rate-limit keys in shared stores.
const DefaultPrefix = "mujerestukuy_contact"

// Policy is the sliding-window configuration.
type Policy struct {
	Max    int
	Window time.Duration
}

// DefaultPolicy allows 5 submissions per minute.
func DefaultPolicy() Policy {
	return Policy{Max: 5, Window: time.Minute}
}

// Result is the decision for one attempt.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// Reset is when the oldest counted attempt leaves the window.
	Reset time.Time
}

// RetryAfter returns how long the caller should wait before retrying,
// rounded up to whole seconds and never below one second.
func (r Result) RetryAfter(now time.Time) time.Duration {
	d := r.Reset.Sub(now)
	if d < time.Second {
		return time.Second
	}
	if rem := d % time.Second; rem != 0 {
		d += time.Second - rem
	}
	return d
}

//go:generate mockgen -destination=../mocks/mock_limiter.go -package=mocks github.com/parduccinward/tukuy-cms/internal/ratelimit Limiter

// Limiter checks and records one attempt for identifier.
type Limiter interface {
	Limit(ctx context.Context, identifier string) (Result, error)
	// Authoritative is false for strategies whose state is not shared
	// across processes.
	Authoritative() bool
}

// Pinger is implemented by limiters backed by an external store.
type Pinger interface {
	Ping(ctx context.Context) error
}

func newResult(p Policy, allowed bool, count int, oldest time.Time) Result {
	remaining := p.Max - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   allowed,
		Limit:     p.Max,
		Remaining: remaining,
		Reset:     oldest.Add(p.Window),
	}
}

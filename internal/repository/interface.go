package repository

import (
	"context"
	"time"
)

// DB is anything whose connection can be health-checked.
type DB interface {
	Ping(ctx context.Context) error
}

// RateLimitHit is the state of one identifier's window after an attempt.
type RateLimitHit struct {
	Allowed bool
	// Count includes the current attempt when it was allowed.
	Count int
	// Oldest is the time of the oldest attempt still inside the window.
	Oldest time.Time
}

// RateLimitRepository stores accepted contact attempts per identifier.
type RateLimitRepository interface {
	// Hit prunes attempts older than window, then records one attempt at
	// `at` only if fewer than max remain. Check and insert are atomic per
	// identifier.
	Hit(ctx context.Context, identifier string, at time.Time, window time.Duration, max int) (RateLimitHit, error)

	// Purge deletes attempts recorded before the cutoff and returns how many
	// rows were removed.
	Purge(ctx context.Context, before time.Time) (int64, error)
}

package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/parduccinward/tukuy-cms/internal/repository"
)

// PostgresLimiter enforces the policy with a RateLimitRepository. The
// repository is responsible for making check-and-insert atomic.
type PostgresLimiter struct {
	repo   repository.RateLimitRepository
	db     repository.DB
	policy Policy
	now    func() time.Time
}

// NewPostgresLimiter creates a PostgresLimiter. db may be nil when no health
// check is wanted.
func NewPostgresLimiter(repo repository.RateLimitRepository, db repository.DB, policy Policy) *PostgresLimiter {
	return &PostgresLimiter{repo: repo, db: db, policy: policy, now: time.Now}
}

func (l *PostgresLimiter) Authoritative() bool { return true }

func (l *PostgresLimiter) Ping(ctx context.Context) error {
	if l.db == nil {
		return nil
	}
	return l.db.Ping(ctx)
}

func (l *PostgresLimiter) Limit(ctx context.Context, identifier string) (Result, error) {
	now := l.now()
	hit, err := l.repo.Hit(ctx, identifier, now, l.policy.Window, l.policy.Max)
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: postgres hit: %w", err)
	}
	oldest := hit.Oldest
	if oldest.IsZero() {
		oldest = now
	}
	return newResult(l.policy, hit.Allowed, hit.Count, oldest), nil
}

// StartJanitor purges attempts that fell out of the window so identifiers
// that never come back do not accumulate rows.
func (l *PostgresLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := l.repo.Purge(ctx, l.now().Add(-l.policy.Window))
				if err != nil {
					slog.Warn("rate limit purge failed", "error", err)
					continue
				}
				if n > 0 {
					slog.Debug("rate limit purge", "rows", n)
				}
			}
		}
	}()
}

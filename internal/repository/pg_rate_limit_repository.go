package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRateLimitRepository is the PostgreSQL implementation of RateLimitRepository.
// Attempts live in contact_rate_limit_hits (see migrations/).
type PgRateLimitRepository struct {
	pool *pgxpool.Pool
}

func NewPgRateLimitRepository(pool *pgxpool.Pool) *PgRateLimitRepository {
	return &PgRateLimitRepository{pool: pool}
}

var _ RateLimitRepository = (*PgRateLimitRepository)(nil)

// Hit serializes concurrent callers for the same identifier with a
// transaction-scoped advisory lock, so two requests cannot both read a count
// below max and insert.
func (r *PgRateLimitRepository) Hit(ctx context.Context, identifier string, at time.Time, window time.Duration, max int) (RateLimitHit, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return RateLimitHit{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, identifier); err != nil {
		return RateLimitHit{}, err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM contact_rate_limit_hits
		 WHERE identifier = $1 AND hit_at <= $2`,
		identifier, at.Add(-window),
	); err != nil {
		return RateLimitHit{}, err
	}

	var (
		count  int
		oldest *time.Time
	)
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*), MIN(hit_at)
		 FROM contact_rate_limit_hits
		 WHERE identifier = $1`,
		identifier,
	).Scan(&count, &oldest); err != nil {
		return RateLimitHit{}, err
	}

	hit := RateLimitHit{Count: count}
	if count < max {
		if _, err := tx.Exec(ctx,
			`INSERT INTO contact_rate_limit_hits (identifier, hit_at) VALUES ($1, $2)`,
			identifier, at,
		); err != nil {
			return RateLimitHit{}, err
		}
		hit.Allowed = true
		hit.Count++
		if oldest == nil {
			oldest = &at
		}
	}
	if oldest != nil {
		hit.Oldest = *oldest
	}

	if err := tx.Commit(ctx); err != nil {
		return RateLimitHit{}, err
	}
	return hit, nil
}

func (r *PgRateLimitRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM contact_rate_limit_hits WHERE hit_at < $1`,
		before,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

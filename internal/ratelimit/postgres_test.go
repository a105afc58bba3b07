package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parduccinward/tukuy-cms/internal/repository"
)

type mockRateLimitRepository struct {
	hitFunc   func(ctx context.Context, identifier string, at time.Time, window time.Duration, max int) (repository.RateLimitHit, error)
	purgeFunc func(ctx context.Context, before time.Time) (int64, error)
}

func (m *mockRateLimitRepository) Hit(ctx context.Context, identifier string, at time.Time, window time.Duration, max int) (repository.RateLimitHit, error) {
	if m.hitFunc != nil {
		return m.hitFunc(ctx, identifier, at, window, max)
	}
	return repository.RateLimitHit{Allowed: true, Count: 1, Oldest: at}, nil
}

func (m *mockRateLimitRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	if m.purgeFunc != nil {
		return m.purgeFunc(ctx, before)
	}
	return 0, nil
}

func TestPostgresLimiter_ForwardsPolicy(t *testing.T) {
	req := require.New(t)
	clock := newFakeClock()

	var gotWindow time.Duration
	var gotMax int
	repo := &mockRateLimitRepository{
		hitFunc: func(_ context.Context, id string, at time.Time, window time.Duration, max int) (repository.RateLimitHit, error) {
			req.Equal("198.51.100.4", id)
			req.True(at.Equal(clock.Now()))
			gotWindow, gotMax = window, max
			return repository.RateLimitHit{Allowed: false, Count: 5, Oldest: at.Add(-20 * time.Second)}, nil
		},
	}
	l := NewPostgresLimiter(repo, nil, DefaultPolicy())
	l.now = clock.Now

	res, err := l.Limit(context.Background(), "198.51.100.4")
	req.NoError(err)
	req.False(res.Allowed)
	req.Equal(time.Minute, gotWindow)
	req.Equal(5, gotMax)
	req.Equal(clock.Now().Add(40*time.Second), res.Reset)
	req.True(l.Authoritative())
	req.NoError(l.Ping(context.Background()))
}

func TestPostgresLimiter_WrapsRepositoryError(t *testing.T) {
	boom := errors.New("connection refused")
	repo := &mockRateLimitRepository{
		hitFunc: func(context.Context, string, time.Time, time.Duration, int) (repository.RateLimitHit, error) {
			return repository.RateLimitHit{}, boom
		},
	}
	l := NewPostgresLimiter(repo, nil, DefaultPolicy())

	_, err := l.Limit(context.Background(), "a")
	require.ErrorIs(t, err, boom)
}

func TestPostgresLimiter_JanitorPurgesOutsideWindow(t *testing.T) {
	clock := newFakeClock()
	purged := make(chan time.Time, 1)
	repo := &mockRateLimitRepository{
		purgeFunc: func(_ context.Context, before time.Time) (int64, error) {
			select {
			case purged <- before:
			default:
			}
			return 1, nil
		},
	}
	l := NewPostgresLimiter(repo, nil, DefaultPolicy())
	l.now = clock.Now

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.StartJanitor(ctx, 5*time.Millisecond)

	select {
	case before := <-purged:
		require.Equal(t, clock.Now().Add(-time.Minute), before)
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not purge")
	}
}

package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisLimiter_BlocksSixthAttempt(t *testing.T) {
	req := require.New(t)
	_, rdb := newTestRedis(t)
	clock := newFakeClock()
	l := NewRedisLimiter(rdb, DefaultPolicy(), withRedisClock(clock.Now))
	ctx := context.Background()

	start := clock.Now()
	for i := 0; i < 5; i++ {
		res, err := l.Limit(ctx, "203.0.113.7")
		req.NoError(err)
		req.True(res.Allowed, "attempt %d", i+1)
		req.Equal(4-i, res.Remaining)
		req.True(res.Reset.Equal(start.Add(time.Minute)), "reset = %v", res.Reset)
		clock.Advance(time.Second)
	}

	res, err := l.Limit(ctx, "203.0.113.7")
	req.NoError(err)
	req.False(res.Allowed)
	req.Equal(0, res.Remaining)
}

func TestRedisLimiter_WindowSlides(t *testing.T) {
	req := require.New(t)
	_, rdb := newTestRedis(t)
	clock := newFakeClock()
	l := NewRedisLimiter(rdb, Policy{Max: 2, Window: time.Minute}, withRedisClock(clock.Now))
	ctx := context.Background()

	_, err := l.Limit(ctx, "a")
	req.NoError(err)
	clock.Advance(30 * time.Second)
	_, err = l.Limit(ctx, "a")
	req.NoError(err)

	res, err := l.Limit(ctx, "a")
	req.NoError(err)
	req.False(res.Allowed)

	clock.Advance(30 * time.Second)
	res, err = l.Limit(ctx, "a")
	req.NoError(err)
	req.True(res.Allowed)
}

func TestRedisLimiter_UsesPrefixedKeys(t *testing.T) {
	mr, rdb := newTestRedis(t)
	l := NewRedisLimiter(rdb, DefaultPolicy(), WithPrefix("site:"))

	_, err := l.Limit(context.Background(), "anonymous")
	require.NoError(t, err)
	require.True(t, mr.Exists("site:anonymous"))
}

func TestRedisLimiter_ConcurrentAttemptsRespectCap(t *testing.T) {
	_, rdb := newTestRedis(t)
	l := NewRedisLimiter(rdb, DefaultPolicy())

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := l.Limit(context.Background(), "burst")
			if err == nil && res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 5, allowed)
}

func TestRedisLimiter_Analytics(t *testing.T) {
	mr, rdb := newTestRedis(t)
	clock := newFakeClock()
	l := NewRedisLimiter(rdb, Policy{Max: 1, Window: time.Minute},
		WithAnalytics(true, time.Hour), withRedisClock(clock.Now))

	_, _ = l.Limit(context.Background(), "a")
	_, _ = l.Limit(context.Background(), "a")

	key := DefaultPrefix + ":analytics:20260308"
	require.Equal(t, "1", mr.HGet(key, "allowed"))
	require.Equal(t, "1", mr.HGet(key, "denied"))
}

func TestRedisLimiter_StoreUnavailable(t *testing.T) {
	mr, rdb := newTestRedis(t)
	l := NewRedisLimiter(rdb, DefaultPolicy())
	mr.Close()

	_, err := l.Limit(context.Background(), "a")
	require.Error(t, err)
	require.Error(t, l.Ping(context.Background()))
	require.True(t, l.Authoritative())
}

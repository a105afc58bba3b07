package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript prunes expired members, then adds the attempt only
// while the window holds fewer than ARGV[3] members. Running it as one
// script makes check-and-increment atomic for concurrent callers.
//
// KEYS[1] window key; ARGV: now (ms), window (ms), limit, member.
// Returns {allowed, count, oldest score}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
  redis.call('ZADD', key, now, ARGV[4])
  count = count + 1
  allowed = 1
end
redis.call('PEXPIRE', key, window)

local first = now
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if oldest[2] then
  first = tonumber(oldest[2])
end
return {allowed, count, first}
`)

// RedisLimiter keeps one sorted set per identifier, scored by attempt time.
type RedisLimiter struct {
	rdb    redis.UniversalClient
	policy Policy
	now    func() time.Time

	prefix       string
	analytics    bool
	analyticsTTL time.Duration
}

type RedisOption func(*RedisLimiter)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) RedisOption {
	return func(l *RedisLimiter) {
		if p := strings.Trim(prefix, ":"); p != "" {
			l.prefix = p
		}
	}
}

// WithAnalytics records allowed/denied counters per UTC day in a hash
// "<prefix>:analytics:YYYYMMDD". Counters expire after ttl.
func WithAnalytics(enabled bool, ttl time.Duration) RedisOption {
	return func(l *RedisLimiter) {
		l.analytics = enabled
		if ttl > 0 {
			l.analyticsTTL = ttl
		}
	}
}

func withRedisClock(now func() time.Time) RedisOption {
	return func(l *RedisLimiter) { l.now = now }
}

func NewRedisLimiter(rdb redis.UniversalClient, policy Policy, opts ...RedisOption) *RedisLimiter {
	l := &RedisLimiter{
		rdb:          rdb,
		policy:       policy,
		now:          time.Now,
		prefix:       DefaultPrefix,
		analyticsTTL: 30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RedisLimiter) Authoritative() bool { return true }

func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}

func (l *RedisLimiter) Limit(ctx context.Context, identifier string) (Result, error) {
	now := l.now()

	vals, err := slidingWindowScript.Run(ctx, l.rdb,
		[]string{l.prefix + ":" + identifier},
		now.UnixMilli(),
		l.policy.Window.Milliseconds(),
		l.policy.Max,
		uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: redis sliding window: %w", err)
	}
	if len(vals) != 3 {
		return Result{}, fmt.Errorf("ratelimit: redis sliding window: unexpected reply %v", vals)
	}

	allowed := vals[0] == 1
	if l.analytics {
		l.record(ctx, allowed, now)
	}
	return newResult(l.policy, allowed, int(vals[1]), time.UnixMilli(vals[2])), nil
}

// record is best-effort; a failure never changes the decision.
func (l *RedisLimiter) record(ctx context.Context, allowed bool, at time.Time) {
	field := "denied"
	if allowed {
		field = "allowed"
	}
	key := fmt.Sprintf("%s:analytics:%s", l.prefix, at.UTC().Format("20060102"))

	pipe := l.rdb.Pipeline()
	pipe.HIncrBy(ctx, key, field, 1)
	pipe.Expire(ctx, key, l.analyticsTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("rate limit analytics write failed", "key", key, "error", err)
	}
}

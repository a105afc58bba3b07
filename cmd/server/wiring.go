package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parduccinward/tukuy-cms/internal/config"
	"github.com/parduccinward/tukuy-cms/internal/mail"
	"github.com/parduccinward/tukuy-cms/internal/ratelimit"
	"github.com/parduccinward/tukuy-cms/internal/repository"
)

const (
	janitorInterval = 5 * time.Minute
	analyticsTTL    = 30 * 24 * time.Hour
)

// limiterSetup is the resolved rate-limit strategy plus what must be closed
// on shutdown.
type limiterSetup struct {
	limiter ratelimit.Limiter
	store   ratelimit.Pinger
	closers []func()
}

func (s *limiterSetup) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// buildLimiter resolves the rate-limit strategy once. Background janitors
// stop when ctx is cancelled.
func buildLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*limiterSetup, error) {
	policy := ratelimit.Policy{Max: cfg.RateLimitMax, Window: cfg.RateLimitWindow}
	setup := &limiterSetup{}

	switch cfg.RateLimitStrategy() {
	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		setup.closers = append(setup.closers, func() { _ = rdb.Close() })

		l := ratelimit.NewRedisLimiter(rdb, policy,
			ratelimit.WithPrefix(ratelimit.DefaultPrefix),
			ratelimit.WithAnalytics(cfg.RateLimitAnalytics, analyticsTTL),
		)
		if err := l.Ping(ctx); err != nil {
			setup.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		setup.limiter, setup.store = l, l

	case config.BackendPostgres:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		setup.closers = append(setup.closers, pool.Close)

		l := ratelimit.NewPostgresLimiter(repository.NewPgRateLimitRepository(pool), pool, policy)
		l.StartJanitor(ctx, janitorInterval)
		setup.limiter, setup.store = l, l

	case config.BackendMemory:
		l := ratelimit.NewMemoryLimiter(policy)
		l.StartJanitor(ctx, janitorInterval)
		setup.limiter = l

	case config.BackendNone:
		setup.limiter = ratelimit.AllowAll{Policy: policy}

	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimitStrategy())
	}

	if !setup.limiter.Authoritative() {
		logger.Warn("rate limiting is process-local; do not run more than one instance",
			"backend", cfg.RateLimitStrategy())
	}
	return setup, nil
}

// buildMailer returns the configured delivery adapter behind a rate throttle.
func buildMailer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (mail.Mailer, error) {
	var m mail.Mailer
	switch cfg.MailProvider {
	case config.ProviderResend:
		m = mail.NewResendMailer(cfg.ResendAPIKey)
	case config.ProviderSES:
		ses, err := mail.NewSESMailer(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		m = ses
	case config.ProviderLog:
		m = &mail.LogMailer{Logger: logger}
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
	return mail.NewThrottled(m, cfg.MailRatePerSecond, cfg.MailBurst), nil
}

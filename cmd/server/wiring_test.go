package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/parduccinward/tukuy-cms/internal/config"
	"github.com/parduccinward/tukuy-cms/internal/mail"
	"github.com/parduccinward/tukuy-cms/internal/ratelimit"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:            "development",
		MailProvider:      config.ProviderLog,
		MailRatePerSecond: 2,
		MailBurst:         2,
		RateLimitMax:      5,
		RateLimitWindow:   time.Minute,
	}
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestBuildLimiter_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.RateLimitBackend = config.BackendRedis
	cfg.RedisURL = "redis://" + mr.Addr() + "/0"

	setup, err := buildLimiter(context.Background(), cfg, discard())
	require.NoError(t, err)
	t.Cleanup(setup.Close)

	require.IsType(t, &ratelimit.RedisLimiter{}, setup.limiter)
	require.True(t, setup.limiter.Authoritative())
	require.NotNil(t, setup.store)

	res, err := setup.limiter.Limit(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	require.True(t, res.Allowed)
}

func TestBuildLimiter_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig()
	cfg.RateLimitBackend = config.BackendRedis
	cfg.RedisURL = "redis://" + addr + "/0"

	_, err := buildLimiter(context.Background(), cfg, discard())
	require.ErrorContains(t, err, "connect to redis")
}

func TestBuildLimiter_BadRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitBackend = config.BackendRedis
	cfg.RedisURL = "http://not-redis"

	_, err := buildLimiter(context.Background(), cfg, discard())
	require.ErrorContains(t, err, "REDIS_URL")
}

func TestBuildLimiter_InProcess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := testConfig()
	setup, err := buildLimiter(ctx, cfg, discard())
	require.NoError(t, err)
	require.IsType(t, &ratelimit.MemoryLimiter{}, setup.limiter)
	require.False(t, setup.limiter.Authoritative())
	require.Nil(t, setup.store)

	cfg.RateLimitBackend = config.BackendNone
	setup, err = buildLimiter(ctx, cfg, discard())
	require.NoError(t, err)
	require.IsType(t, ratelimit.AllowAll{}, setup.limiter)
}

func TestBuildMailer(t *testing.T) {
	cfg := testConfig()
	m, err := buildMailer(context.Background(), cfg, discard())
	require.NoError(t, err)
	require.IsType(t, &mail.Throttled{}, m)
	require.NoError(t, m.Send(context.Background(), mail.Message{
		From:    "contacto@mujerestukuy.com",
		To:      []string{"ana@example.com"},
		Subject: "hola",
		Text:    "hola",
	}))

	cfg.MailProvider = config.ProviderResend
	cfg.ResendAPIKey = "re_test_key_123"
	_, err = buildMailer(context.Background(), cfg, discard())
	require.NoError(t, err)

	cfg.MailProvider = "smtp"
	_, err = buildMailer(context.Background(), cfg, discard())
	require.Error(t, err)
}

// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Rate-limit backends accepted by RATE_LIMIT_BACKEND.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendNone     = "none"
)

// Mail providers accepted by MAIL_PROVIDER.
const (
	ProviderResend = "resend"
	ProviderSES    = "ses"
	ProviderLog    = "log"
)

const envProduction = "production"

var waNumberPattern = regexp.MustCompile(`^[1-9]\d{6,14}$`)

type Config struct {
	AppEnv            string `env:"APP_ENV,default=development"`
	Port              string `env:"PORT,default=8080"`
	LogLevel          string `env:"LOG_LEVEL,default=INFO"`
	FrontendURL       string `env:"FRONTEND_URL,default=http://localhost:3000"`
	TrustedProxyCount int    `env:"TRUSTED_PROXY_COUNT,default=1"`

	CalendlyURL string `env:"CALENDLY_URL"`
	WANumber    string `env:"WA_NUMBER"`

	MailProvider      string  `env:"MAIL_PROVIDER,default=resend"`
	ResendAPIKey      string  `env:"RESEND_API_KEY"`
	AWSRegion         string  `env:"AWS_REGION"`
	MailRatePerSecond float64 `env:"MAIL_RATE_PER_SECOND,default=2"`
	MailBurst         int     `env:"MAIL_BURST,default=2"`
	ContactInbox      string  `env:"CONTACT_INBOX,default=contacto@mujerestukuy.com"`
	MailFrom          string  `env:"MAIL_FROM,default=Mujeres Tukuy <contacto@mujerestukuy.com>"`
	AckFrom           string  `env:"ACK_FROM,default=Janette Blacutt <contacto@mujerestukuy.com>"`
	Signature         string  `env:"SIGNATURE,default=Janette Blacutt"`

	RateLimitBackend   string        `env:"RATE_LIMIT_BACKEND"`
	RateLimitMax       int           `env:"RATE_LIMIT_MAX,default=5"`
	RateLimitWindow    time.Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
	RateLimitAnalytics bool          `env:"RATE_LIMIT_ANALYTICS,default=false"`
	RedisURL           string        `env:"REDIS_URL"`
	DatabaseURL        string        `env:"DATABASE_URL"`
}

// ConfigError lists every problem found by Validate.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "invalid configuration:\n  - " + strings.Join(e.Problems, "\n  - ")
}

// Load reads .env when present, unmarshals the environment and validates
// the result. It returns a *ConfigError when settings are missing or invalid.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, envProduction)
}

// RateLimitStrategy resolves the rate-limit backend. When RATE_LIMIT_BACKEND
// is unset, production uses redis and other environments use memory.
func (c *Config) RateLimitStrategy() string {
	if b := strings.ToLower(strings.TrimSpace(c.RateLimitBackend)); b != "" {
		return b
	}
	if c.IsProduction() {
		return BackendRedis
	}
	return BackendMemory
}

// WhatsAppURL is the direct-contact link built from WA_NUMBER.
func (c *Config) WhatsAppURL() string {
	return "https://wa.me/" + c.WANumber
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.CalendlyURL == "" {
		add("CALENDLY_URL is required")
	} else if u, err := url.Parse(c.CalendlyURL); err != nil || u.Scheme != "https" || u.Host == "" {
		add("CALENDLY_URL must be an https URL")
	}
	if c.WANumber == "" {
		add("WA_NUMBER is required")
	} else if !waNumberPattern.MatchString(c.WANumber) {
		add("WA_NUMBER must be digits only in international format, e.g. 59176543210")
	}

	switch strings.ToLower(c.MailProvider) {
	case ProviderResend:
		if c.ResendAPIKey == "" {
			add("RESEND_API_KEY is required when MAIL_PROVIDER=resend")
		}
	case ProviderSES:
		if c.AWSRegion == "" {
			add("AWS_REGION is required when MAIL_PROVIDER=ses")
		}
	case ProviderLog:
		if c.IsProduction() {
			add("MAIL_PROVIDER=log is not allowed in production")
		}
	default:
		add("MAIL_PROVIDER must be one of resend, ses, log (got %q)", c.MailProvider)
	}
	if c.MailRatePerSecond <= 0 {
		add("MAIL_RATE_PER_SECOND must be positive")
	}
	if c.MailBurst < 1 {
		add("MAIL_BURST must be at least 1")
	}
	if c.ContactInbox == "" {
		add("CONTACT_INBOX is required")
	}

	switch c.RateLimitStrategy() {
	case BackendRedis:
		if c.RedisURL == "" {
			add("REDIS_URL is required when the rate limit backend is redis")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			add("DATABASE_URL is required when the rate limit backend is postgres")
		}
	case BackendMemory, BackendNone:
		if c.IsProduction() {
			add("rate limit backend %q is not shared across instances and is not allowed in production", c.RateLimitStrategy())
		}
	default:
		add("RATE_LIMIT_BACKEND must be one of redis, postgres, memory, none (got %q)", c.RateLimitBackend)
	}
	if c.RateLimitMax < 1 {
		add("RATE_LIMIT_MAX must be at least 1")
	}
	if c.RateLimitWindow < time.Second {
		add("RATE_LIMIT_WINDOW must be at least 1s")
	}
	if c.TrustedProxyCount < 1 {
		add("TRUSTED_PROXY_COUNT must be at least 1")
	}

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}

// LogStatus logs which integrations are configured. It logs nothing outside
// development, and never logs secret values.
func (c *Config) LogStatus(logger *slog.Logger) {
	if c.IsProduction() {
		return
	}
	logger.Info("configuration",
		"app_env", c.AppEnv,
		"mail_provider", c.MailProvider,
		"resend_api_key", configured(c.ResendAPIKey),
		"aws_region", configured(c.AWSRegion),
		"whatsapp", configured(c.WANumber),
		"calendly", configured(c.CalendlyURL),
		"rate_limit_backend", c.RateLimitStrategy(),
		"redis", configured(c.RedisURL),
		"database", configured(c.DatabaseURL),
	)
}

func configured(v string) string {
	if v == "" {
		return "missing"
	}
	return "configured"
}

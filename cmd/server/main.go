package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parduccinward/tukuy-cms/internal/config"
	"github.com/parduccinward/tukuy-cms/internal/handler"
	"github.com/parduccinward/tukuy-cms/internal/logging"
	"github.com/parduccinward/tukuy-cms/internal/notify"
	"github.com/parduccinward/tukuy-cms/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup(os.Getenv("LOG_LEVEL"))
		logging.Fatal("configuration error", "error", err)
	}
	logger := logging.Setup(cfg.LogLevel)
	cfg.LogStatus(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limits, err := buildLimiter(ctx, cfg, logger)
	if err != nil {
		logging.Fatal("failed to set up rate limiter", "error", err)
	}
	defer limits.Close()

	mailer, err := buildMailer(ctx, cfg, logger)
	if err != nil {
		logging.Fatal("failed to set up mailer", "error", err)
	}

	notifier, err := notify.New(mailer, notify.Config{
		Inbox:       cfg.ContactInbox,
		From:        cfg.MailFrom,
		AckFrom:     cfg.AckFrom,
		Signature:   cfg.Signature,
		CalendlyURL: cfg.CalendlyURL,
		WhatsAppURL: cfg.WhatsAppURL(),
	}, logger)
	if err != nil {
		logging.Fatal("failed to set up notifier", "error", err)
	}

	contactService := service.NewContactService(limits.limiter, notifier, logger)
	router := handler.NewRouter(
		handler.New(limits.store),
		handler.NewContactHandler(contactService, cfg.TrustedProxyCount),
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Two provider round trips plus throttling must fit.
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr, "rate_limit_backend", cfg.RateLimitStrategy(), "mail_provider", cfg.MailProvider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/parduccinward/tukuy-cms/internal/model"
	"github.com/parduccinward/tukuy-cms/internal/ratelimit"
	"github.com/parduccinward/tukuy-cms/internal/spam"
	"github.com/parduccinward/tukuy-cms/internal/validation"
)

// Notifier sends the emails for an accepted submission.
type Notifier interface {
	Notify(ctx context.Context, sub model.Submission) error
}

// contactServiceImpl is the production implementation of ContactService.
// It holds no per-request state; cross-request state lives in the limiter.
type contactServiceImpl struct {
	limiter  ratelimit.Limiter
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewContactService wires the pipeline stages. A nil logger means slog.Default().
func NewContactService(limiter ratelimit.Limiter, notifier Notifier, logger *slog.Logger) ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contactServiceImpl{
		limiter:  limiter,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *contactServiceImpl) Submit(ctx context.Context, identifier string, decode Decoder) error {
	start := s.now()
	log := s.logger.With("submission_id", uuid.NewString(), "identifier", identifier)

	err := s.run(ctx, identifier, decode, log)

	outcome := OutcomeOf(err)
	attrs := []any{
		"outcome", outcome.String(),
		"duration_ms", s.now().Sub(start).Milliseconds(),
	}
	switch {
	case outcome == model.OutcomeDeliveryFailed:
		log.ErrorContext(ctx, "contact submission failed", append(attrs, "error", err)...)
	case err != nil:
		log.InfoContext(ctx, "contact submission rejected", append(attrs, "reason", err.Error())...)
	default:
		log.InfoContext(ctx, "contact submission accepted", attrs...)
	}
	return err
}

func (s *contactServiceImpl) run(ctx context.Context, identifier string, decode Decoder, log *slog.Logger) error {
	res, err := s.limiter.Limit(ctx, identifier)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRateLimitUnavailable, err)
	}
	if !res.Allowed {
		return &RateLimitedError{RetryAfterSeconds: int(res.RetryAfter(s.now()).Seconds())}
	}

	req, err := decode()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	sub, err := validation.Validate(req)
	if err != nil {
		return err
	}
	log.DebugContext(ctx, "contact submission validated",
		"service", sub.Service, "modality", sub.Modality)

	if spam.IsSpam(sub) {
		return ErrSpamRejected
	}

	if err := s.notifier.Notify(ctx, sub); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	return nil
}

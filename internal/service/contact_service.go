package service

import (
	"context"
	"errors"

	"github.com/parduccinward/tukuy-cms/internal/model"
	"github.com/parduccinward/tukuy-cms/internal/validation"
)

var (
	// ErrRateLimited means the identifier used up its window.
	ErrRateLimited = errors.New("contact: rate limited")
	// ErrRateLimitUnavailable means the rate-limit store could not be consulted.
	ErrRateLimitUnavailable = errors.New("contact: rate limit store unavailable")
	// ErrMalformedBody means the request body could not be decoded.
	ErrMalformedBody = errors.New("contact: malformed request body")
	// ErrSpamRejected means the decoy field was filled in.
	ErrSpamRejected = errors.New("contact: spam rejected")
	// ErrDeliveryFailed means the internal notification could not be sent.
	ErrDeliveryFailed = errors.New("contact: delivery failed")
)

// RateLimitedError carries the limiter decision so the caller can set
// Retry-After. It matches ErrRateLimited with errors.Is.
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string { return ErrRateLimited.Error() }

func (e *RateLimitedError) Is(target error) bool { return target == ErrRateLimited }

// Decoder produces the submitted form. It is called only after the rate
// limit check has passed.
type Decoder func() (model.ContactRequest, error)

// Request returns a Decoder for an already decoded form.
func Request(req model.ContactRequest) Decoder {
	return func() (model.ContactRequest, error) { return req, nil }
}

// ContactService runs the contact-form pipeline.
type ContactService interface {
	// Submit checks the rate limit for identifier, decodes and validates the
	// form, rejects spam and sends the notifications, stopping at the first
	// failing stage. A nil error means the submission was accepted.
	Submit(ctx context.Context, identifier string, decode Decoder) error
}

// OutcomeOf maps an error returned by Submit to its pipeline outcome.
// Errors that belong to no stage are reported as DeliveryFailed, which the
// HTTP layer renders as a server error.
func OutcomeOf(err error) model.Outcome {
	var verrs *validation.Errors
	switch {
	case err == nil:
		return model.OutcomeAccepted
	case errors.Is(err, ErrRateLimited):
		return model.OutcomeRateLimited
	case errors.As(err, &verrs), errors.Is(err, ErrMalformedBody):
		return model.OutcomeInvalid
	case errors.Is(err, ErrSpamRejected):
		return model.OutcomeSpamRejected
	default:
		return model.OutcomeDeliveryFailed
	}
}

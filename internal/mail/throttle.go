package mail

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Throttled spaces out calls to the wrapped Mailer so the delivery service's
// request rate limit is not exceeded when several submissions arrive at once.
type Throttled struct {
	next Mailer
	lim  *rate.Limiter
}

func NewThrottled(next Mailer, perSecond float64, burst int) *Throttled {
	if burst < 1 {
		burst = 1
	}
	return &Throttled{next: next, lim: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Send waits for a token, then delegates. It gives up when ctx ends first.
func (t *Throttled) Send(ctx context.Context, msg Message) error {
	if err := t.lim.Wait(ctx); err != nil {
		return fmt.Errorf("mail: throttle: %w", err)
	}
	return t.next.Send(ctx, msg)
}

// Package mail adapts external delivery services behind a single Mailer
// interface. Adapters are constructed once at startup and injected.
package mail

import (
	"context"
	"errors"
)

// ErrNoRecipients is returned when a message has no To address.
var ErrNoRecipients = errors.New("mail: no recipients")

// Message is one outbound email. HTML is required; Text is the plain
// alternative and may be empty.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=mocks github.com/parduccinward/tukuy-cms/internal/mail Mailer

// Mailer sends a single message. Implementations make one delivery attempt
// and do not retry.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

func (m Message) validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	return nil
}

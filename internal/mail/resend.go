package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// resendEmails is the subset of the Resend SDK used here.
type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendMailer delivers through the Resend HTTP API.
type ResendMailer struct {
	emails resendEmails
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{emails: resend.NewClient(apiKey).Emails}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	sent, err := m.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("mail: resend send: %w", err)
	}
	if sent == nil || sent.Id == "" {
		return fmt.Errorf("mail: resend send: empty response")
	}
	return nil
}

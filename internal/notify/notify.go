// Package notify composes and sends the two emails triggered by an accepted
// contact submission: the internal notification to the business inbox and
// the acknowledgment to the visitor.
package notify

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"sort"
	texttemplate "text/template"

	"github.com/parduccinward/tukuy-cms/internal/mail"
	"github.com/parduccinward/tukuy-cms/internal/model"
)

//go:embed templates/*
var templateFS embed.FS

// ErrDelivery marks a failure to hand the internal notification to the
// delivery service.
var ErrDelivery = errors.New("notify: delivery failed")

const ackSubject = "¡Gracias por contactarme! - Mujeres Tukuy"

// Config holds addresses and links. All fields are required.
type Config struct {
	Inbox       string // business address receiving notifications
	From        string // sender of the internal notification
	AckFrom     string // sender of the acknowledgment
	Signature   string // name signing the acknowledgment
	CalendlyURL string // scheduling link
	WhatsAppURL string // direct-contact link
}

func (c Config) validate() error {
	missing := []string{}
	for name, v := range map[string]string{
		"Inbox":       c.Inbox,
		"From":        c.From,
		"AckFrom":     c.AckFrom,
		"Signature":   c.Signature,
		"CalendlyURL": c.CalendlyURL,
		"WhatsAppURL": c.WhatsAppURL,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("notify: missing config %v", missing)
	}
	return nil
}

// Notifier sends both messages through one Mailer.
type Notifier struct {
	mailer mail.Mailer
	cfg    Config
	logger *slog.Logger

	internalHTML *htmltemplate.Template
	internalText *texttemplate.Template
	ackHTML      *htmltemplate.Template
	ackText      *texttemplate.Template
}

// New parses the templates and checks cfg. A nil logger means slog.Default().
func New(mailer mail.Mailer, cfg Config, logger *slog.Logger) (*Notifier, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	n := &Notifier{mailer: mailer, cfg: cfg, logger: logger}

	var err error
	if n.internalHTML, err = htmltemplate.ParseFS(templateFS, "templates/internal.html"); err != nil {
		return nil, fmt.Errorf("notify: parse internal.html: %w", err)
	}
	if n.internalText, err = texttemplate.ParseFS(templateFS, "templates/internal.txt"); err != nil {
		return nil, fmt.Errorf("notify: parse internal.txt: %w", err)
	}
	if n.ackHTML, err = htmltemplate.ParseFS(templateFS, "templates/ack.html"); err != nil {
		return nil, fmt.Errorf("notify: parse ack.html: %w", err)
	}
	if n.ackText, err = texttemplate.ParseFS(templateFS, "templates/ack.txt"); err != nil {
		return nil, fmt.Errorf("notify: parse ack.txt: %w", err)
	}
	return n, nil
}

type internalData struct {
	Name     string
	Email    string
	WhatsApp string
	Service  string
	Modality string
	Message  string
}

type ackData struct {
	Name        string
	CalendlyURL string
	WhatsAppURL string
	Signature   string
}

// Notify sends the internal notification first. If it fails the
// acknowledgment is not attempted and an error wrapping ErrDelivery is
// returned. A failed acknowledgment alone is logged at WARN and not returned.
func (n *Notifier) Notify(ctx context.Context, sub model.Submission) error {
	internal, err := n.internalMessage(sub)
	if err != nil {
		return err
	}
	if err := n.mailer.Send(ctx, internal); err != nil {
		return fmt.Errorf("%w: internal notification: %w", ErrDelivery, err)
	}

	ack, err := n.ackMessage(sub)
	if err == nil {
		err = n.mailer.Send(ctx, ack)
	}
	if err != nil {
		n.logger.WarnContext(ctx, "contact acknowledgment not sent", "error", err)
	}
	return nil
}

func (n *Notifier) internalMessage(sub model.Submission) (mail.Message, error) {
	data := internalData{
		Name:     sub.Name,
		Email:    sub.Email,
		WhatsApp: sub.WhatsApp,
		Message:  sub.Message,
	}
	if sub.Service != "" {
		data.Service = sub.Service.Label()
	}
	if sub.Modality != "" {
		data.Modality = sub.Modality.Label()
	}

	html, text, err := render(n.internalHTML, n.internalText, data)
	if err != nil {
		return mail.Message{}, fmt.Errorf("notify: render internal notification: %w", err)
	}
	return mail.Message{
		From:    n.cfg.From,
		To:      []string{n.cfg.Inbox},
		ReplyTo: sub.Email,
		Subject: fmt.Sprintf("Nuevo contacto: %s - %s", sub.Name, sub.Service.Label()),
		HTML:    html,
		Text:    text,
	}, nil
}

func (n *Notifier) ackMessage(sub model.Submission) (mail.Message, error) {
	html, text, err := render(n.ackHTML, n.ackText, ackData{
		Name:        sub.Name,
		CalendlyURL: n.cfg.CalendlyURL,
		WhatsAppURL: n.cfg.WhatsAppURL,
		Signature:   n.cfg.Signature,
	})
	if err != nil {
		return mail.Message{}, fmt.Errorf("notify: render acknowledgment: %w", err)
	}
	return mail.Message{
		From:    n.cfg.AckFrom,
		To:      []string{sub.Email},
		Subject: ackSubject,
		HTML:    html,
		Text:    text,
	}, nil
}

func render(h *htmltemplate.Template, t *texttemplate.Template, data any) (string, string, error) {
	var hb, tb bytes.Buffer
	if err := h.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := t.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

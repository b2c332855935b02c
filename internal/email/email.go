package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs emails instead of sending them when ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.InfoContext(ctx, "email (local dev)", "to", to, "subject", subject, "body", body)
	return nil
}

// ResendSender sends emails via the Resend API outside local.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger.With("component", "email")}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

const welcomeSubject = "Welcome aboard"

var welcomeTmpl = template.Must(template.New("welcome").Parse(
	`<p>Hi{{if .}} {{.}}{{end}},</p><p>Your account has been created. You can now sign in with your email and password.</p>`,
))

// Welcome renders the registration email. firstName is HTML-escaped.
func Welcome(firstName string) (subject, body string, err error) {
	var buf bytes.Buffer
	if err := welcomeTmpl.Execute(&buf, firstName); err != nil {
		return "", "", fmt.Errorf("render welcome email: %w", err)
	}
	return welcomeSubject, buf.String(), nil
}

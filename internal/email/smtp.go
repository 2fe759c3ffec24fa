// Package email delivers account emails over SMTP.
package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/auth2api/auth2-server/internal/config"
	"github.com/auth2api/auth2-server/internal/logger"
	"github.com/auth2api/auth2-server/internal/model"
)

var _ model.EmailService = (*SMTP)(nil)

type SMTP struct {
	client  *mail.Client
	from    string
	baseURL string
	logger  *logger.Logger
}

func NewSMTP(cfg config.SMTP, from, baseURL string, logger *logger.Logger) (*SMTP, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.Timeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTP{
		client:  client,
		from:    from,
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

func (s *SMTP) SendForgottenPassword(ctx context.Context, to model.Email, resetToken string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return model.NewError(model.KindSendEmail, "invalid sender address", err)
	}
	if err := msg.To(to.String()); err != nil {
		return model.NewError(model.KindSendEmail, "invalid recipient address", err)
	}

	msg.Subject("Reset your password")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"A password reset was requested for your account.\n\n"+
			"Use the link below to choose a new password:\n\n%s/%s\n\n"+
			"If you did not request this, you can ignore this email.",
		s.baseURL, resetToken,
	))

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return model.NewError(model.KindSendEmail, "failed to send email", err)
	}

	s.logger.Info("Email service: forgotten password email sent",
		"to", to.String())

	return nil
}

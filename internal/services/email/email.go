// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package email sends the password reset notifications via SMTP.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/fomag/convocatoria-backend/internal/config"
)

// Service delivers notification mail. With no SMTP host configured every
// send is a silent no-op.
type Service struct {
	cfg *config.SMTPConfig
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig) *Service {
	return &Service{cfg: cfg}
}

// Enabled reports whether outgoing mail is configured.
func (s *Service) Enabled() bool {
	return s.cfg.Host != "" && s.cfg.From != ""
}

// ClaveRestablecida notifies the provider contacts that the portal clave was
// just changed. Delivery problems are logged, never propagated; the reset
// itself already succeeded.
func (s *Service) ClaveRestablecida(ctx context.Context, nit string, correos []string) {
	if !s.Enabled() || len(correos) == 0 {
		return
	}

	subject := "Clave del portal restablecida"
	body := fmt.Sprintf(
		"La clave de acceso al portal de prestadores para el NIT %s fue restablecida.\n\n"+
			"Si usted no realizó este cambio, comuníquese de inmediato con el administrador del portal.\n",
		nit)

	for _, to := range correos {
		if err := s.send(ctx, to, subject, body); err != nil {
			slog.Warn("failed to send reset notification", "nit", nit, "to", to, "error", err)
		}
	}
}

// send delivers one plain-text message via SMTP using go-mail.
func (s *Service) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}

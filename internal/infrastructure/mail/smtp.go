package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/umeshkhanal/rumooz/internal/config"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

var ErrMailNotConfigured = errors.New("mail transport is not configured")

// SMTPNotifier sends messages through the configured SMTP relay.
type SMTPNotifier struct {
	cfg config.MailConfig
	log *zap.Logger
}

func NewSMTPNotifier(cfg config.MailConfig, log *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: log}
}

func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	if n.cfg.Host == "" {
		return ErrMailNotConfigured
	}

	m := gomail.NewMsg()
	if err := m.FromFormat(n.cfg.FromName, n.cfg.Sender()); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)

	client, err := gomail.NewClient(n.cfg.Host, n.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		n.log.Error("Failed to send email",
			zap.String("event", "mail_send_failed"),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.log.Info("Email sent",
		zap.String("event", "mail_sent"),
		zap.String("subject", msg.Subject),
	)
	return nil
}

func (n *SMTPNotifier) clientOptions() []gomail.Option {
	opts := []gomail.Option{
		gomail.WithPort(n.cfg.Port),
		gomail.WithTimeout(n.cfg.Timeout()),
	}

	if n.cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(n.cfg.User),
			gomail.WithPassword(n.cfg.Password),
		)
	}

	// implicit TLS on 465, STARTTLS otherwise
	if n.cfg.Secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	return opts
}

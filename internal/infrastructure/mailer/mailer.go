package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"file-share-api/config"
	"file-share-api/internal/domain/notification"
)

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type Mailer struct {
	log    *zap.Logger
	from   string
	client sender
}

func New(cfg config.SMTP, logger *zap.Logger) (*Mailer, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.TLS {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
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
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &Mailer{log: logger, from: cfg.From, client: client}, nil
}

// Send renders the email for e and delivers it.
func (m *Mailer) Send(ctx context.Context, e notification.Event) error {
	msg, err := m.build(e)
	if err != nil {
		return err
	}
	if err = m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send %s email: %w", e.Kind, err)
	}

	m.log.Info("email sent", zap.String("kind", string(e.Kind)), zap.String("event_id", e.ID.String()))
	return nil
}

func (m *Mailer) build(e notification.Event) (*mail.Msg, error) {
	tpl, ok := templates[e.Kind]
	if !ok {
		return nil, fmt.Errorf("no template for %q", e.Kind)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(e.To); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject(e))
	if err := msg.SetBodyHTMLTemplate(tpl, e); err != nil {
		return nil, fmt.Errorf("render %s: %w", e.Kind, err)
	}

	return msg, nil
}

package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPTransport delivers over SMTP with mandatory STARTTLS. It logs in
// only when both a username and a password are configured.
type SMTPTransport struct{}

func NewSMTPTransport() *SMTPTransport {
	return &SMTPTransport{}
}

func (t *SMTPTransport) Send(ctx context.Context, cfg Config, msg Message) error {
	m, err := buildMsg(cfg, msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.Timeout),
	}

	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}

	return nil
}

func buildMsg(cfg Config, msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()

	if err := m.From(cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", cfg.From, err)
	}

	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipients: %w", err)
	}

	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	for _, a := range msg.Attachments {
		err := m.AttachReader(a.Filename, bytes.NewReader(a.Data),
			mail.WithFileContentType(mail.ContentType(a.ContentType)))
		if err != nil {
			return nil, fmt.Errorf("attaching %s: %w", a.Filename, err)
		}
	}

	return m, nil
}

package mailer

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/fleetledger/internal/settings"
)

const (
	DefaultPort    = 587
	DefaultTimeout = 30 * time.Second
)

const reasonNotConfigured = "SMTP_HOST or recipients not configured"

// Config is the SMTP delivery configuration resolved at send time.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// Getter resolves a setting by key; *settings.Service satisfies it.
type Getter interface {
	Get(ctx context.Context, key string) (string, error)
}

// LoadConfig reads the SMTP settings. An unparsable port falls back to
// DefaultPort and a blank sender falls back to the SMTP user.
func LoadConfig(ctx context.Context, get Getter) (Config, error) {
	values := make(map[string]string, 5)

	for _, key := range []string{
		settings.KeySMTPHost,
		settings.KeySMTPPort,
		settings.KeySMTPUser,
		settings.KeySMTPPass,
		settings.KeyEmailFrom,
	} {
		v, err := get.Get(ctx, key)
		if err != nil {
			return Config{}, err
		}

		values[key] = strings.TrimSpace(v)
	}

	cfg := Config{
		Host:     values[settings.KeySMTPHost],
		Port:     DefaultPort,
		Username: values[settings.KeySMTPUser],
		Password: values[settings.KeySMTPPass],
		From:     values[settings.KeyEmailFrom],
		Timeout:  DefaultTimeout,
	}

	if raw := values[settings.KeySMTPPort]; raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 {
			slog.WarnContext(ctx, "invalid SMTP_PORT, using default", "value", raw, "default", DefaultPort)
		} else {
			cfg.Port = port
		}
	}

	if cfg.From == "" {
		cfg.From = cfg.Username
	}

	return cfg, nil
}

// ParseRecipients splits a comma-separated list, dropping blank entries.
func ParseRecipients(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}

	return out
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	To          []string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Result reports the outcome of a delivery attempt. Reason is set when
// Sent is false.
type Result struct {
	Sent   bool
	Reason string
}

//go:generate mockgen -source=mailer.go -destination=transport_mock.go -package=mailer
type Transport interface {
	Send(ctx context.Context, cfg Config, msg Message) error
}

// Mailer validates the configuration and hands messages to a Transport.
// Delivery is attempted once.
type Mailer struct {
	settings  Getter
	transport Transport
	timeout   time.Duration
}

func New(getter Getter, transport Transport, timeout time.Duration) *Mailer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Mailer{settings: getter, transport: transport, timeout: timeout}
}

func (m *Mailer) Send(ctx context.Context, msg Message) Result {
	cfg, err := LoadConfig(ctx, m.settings)
	if err != nil {
		return Result{Reason: err.Error()}
	}

	cfg.Timeout = m.timeout

	if cfg.Host == "" || len(msg.To) == 0 {
		return Result{Reason: reasonNotConfigured}
	}

	if err := m.transport.Send(ctx, cfg, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send email", "host", cfg.Host, "subject", msg.Subject, "error", err)
		return Result{Reason: err.Error()}
	}

	slog.InfoContext(ctx, "email sent", "recipients", len(msg.To), "subject", msg.Subject)

	return Result{Sent: true, Reason: "Email sent"}
}

package mailer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleetledger/internal/mailer"
)

func expectSettings(m *mailer.MockGetter, values map[string]string) {
	m.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) (string, error) {
			return values[key], nil
		}).
		AnyTimes()
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   mailer.Config
	}{
		{
			name: "Complete",
			values: map[string]string{
				"SMTP_HOST":  "smtp.example.com",
				"SMTP_PORT":  "2525",
				"SMTP_USER":  "user@example.com",
				"SMTP_PASS":  "secret",
				"EMAIL_FROM": "fleet@example.com",
			},
			want: mailer.Config{
				Host:     "smtp.example.com",
				Port:     2525,
				Username: "user@example.com",
				Password: "secret",
				From:     "fleet@example.com",
				Timeout:  mailer.DefaultTimeout,
			},
		},
		{
			name: "FromFallsBackToUser",
			values: map[string]string{
				"SMTP_HOST": "smtp.example.com",
				"SMTP_USER": "user@example.com",
			},
			want: mailer.Config{
				Host:     "smtp.example.com",
				Port:     mailer.DefaultPort,
				Username: "user@example.com",
				From:     "user@example.com",
				Timeout:  mailer.DefaultTimeout,
			},
		},
		{
			name:   "InvalidPort",
			values: map[string]string{"SMTP_PORT": "smtp"},
			want:   mailer.Config{Port: mailer.DefaultPort, Timeout: mailer.DefaultTimeout},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			getter := mailer.NewMockGetter(ctrl)
			expectSettings(getter, tt.values)

			got, err := mailer.LoadConfig(context.Background(), getter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecipients(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, mailer.ParseRecipients(" a@x.com, ,b@x.com,"))
	assert.Nil(t, mailer.ParseRecipients(" , "))
}

func TestMailer_Send(t *testing.T) {
	msg := mailer.Message{To: []string{"ops@example.com"}, Subject: "Hello", Body: "Body"}

	type testCase struct {
		name      string
		values    map[string]string
		msg       mailer.Message
		setupMock func(m *mailer.MockTransport)
		want      mailer.Result
	}

	tests := []testCase{
		{
			name:   "Sent",
			values: map[string]string{"SMTP_HOST": "smtp.example.com"},
			msg:    msg,
			setupMock: func(m *mailer.MockTransport) {
				m.EXPECT().
					Send(gomock.Any(), gomock.Any(), msg).
					DoAndReturn(func(_ context.Context, cfg mailer.Config, _ mailer.Message) error {
						assert.Equal(t, 5*time.Second, cfg.Timeout)
						assert.Equal(t, mailer.DefaultPort, cfg.Port)
						return nil
					})
			},
			want: mailer.Result{Sent: true, Reason: "Email sent"},
		},
		{
			name: "NoHost",
			msg:  msg,
			want: mailer.Result{Reason: "SMTP_HOST or recipients not configured"},
		},
		{
			name:   "NoRecipients",
			values: map[string]string{"SMTP_HOST": "smtp.example.com"},
			msg:    mailer.Message{Subject: "Hello"},
			want:   mailer.Result{Reason: "SMTP_HOST or recipients not configured"},
		},
		{
			name:   "TransportFailure",
			values: map[string]string{"SMTP_HOST": "smtp.example.com"},
			msg:    msg,
			setupMock: func(m *mailer.MockTransport) {
				m.EXPECT().Send(gomock.Any(), gomock.Any(), msg).Return(errors.New("dial tcp: i/o timeout"))
			},
			want: mailer.Result{Reason: "dial tcp: i/o timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			getter := mailer.NewMockGetter(ctrl)
			expectSettings(getter, tt.values)

			transport := mailer.NewMockTransport(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(transport)
			}

			m := mailer.New(getter, transport, 5*time.Second)
			assert.Equal(t, tt.want, m.Send(context.Background(), tt.msg))
		})
	}
}

func TestMailer_SettingsError(t *testing.T) {
	ctrl := gomock.NewController(t)

	getter := mailer.NewMockGetter(ctrl)
	getter.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("db down"))

	m := mailer.New(getter, mailer.NewMockTransport(ctrl), 0)

	got := m.Send(context.Background(), mailer.Message{To: []string{"a@x.com"}})
	assert.False(t, got.Sent)
	assert.Equal(t, "db down", got.Reason)
}

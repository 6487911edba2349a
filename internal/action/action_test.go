package action

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrintAction_PrintsMessage(t *testing.T) {
	var out bytes.Buffer
	action := NewPrintAction(&out)

	require.NoError(t, action.Execute(context.Background(), "GOOG > $10"))
	assert.Equal(t, "GOOG > $10\n", out.String())
	assert.Equal(t, "print", action.Name())
}

func TestPrintAction_WriteError(t *testing.T) {
	action := NewPrintAction(failingWriter{})
	assert.Error(t, action.Execute(context.Background(), "GOOG > $10"))
}

func TestLogAction_LogsMessage(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	action := NewLogAction(zap.New(core))

	require.NoError(t, action.Execute(context.Background(), "AAPL > $5"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "AAPL > $5", entries[0].ContextMap()["alert"])
}

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func TestEmailAction_SendsToTheRightServer(t *testing.T) {
	var sent []sentMail
	action := NewEmailAction("siddharta@silverstripesoftware.com", SMTPConfig{}).
		WithSender(func(addr, from string, to []string, msg []byte) error {
			sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
			return nil
		})

	require.NoError(t, action.Execute(context.Background(), "MSFT has crossed $10 price level"))

	require.Len(t, sent, 1)
	assert.Equal(t, "email.stocks.com:25", sent[0].addr)
	assert.Equal(t, "alerts@stocks.com", sent[0].from)
	assert.Equal(t, []string{"siddharta@silverstripesoftware.com"}, sent[0].to)
	assert.True(t, strings.HasPrefix(sent[0].msg, "Subject: New Stock Alert\r\n"))
	assert.Contains(t, sent[0].msg, "To: siddharta@silverstripesoftware.com\r\n")
	assert.Contains(t, sent[0].msg, "\r\n\r\nMSFT has crossed $10 price level\r\n")
}

func TestEmailAction_ConfiguredRelay(t *testing.T) {
	var addr, from string
	action := NewEmailAction("ops@example.com", SMTPConfig{Host: "mail.local", Port: 2525, From: "bot@example.com"}).
		WithSender(func(a, f string, _ []string, _ []byte) error {
			addr, from = a, f
			return nil
		})

	require.NoError(t, action.Execute(context.Background(), "alert"))
	assert.Equal(t, "mail.local:2525", addr)
	assert.Equal(t, "bot@example.com", from)
}

func TestEmailAction_SendError(t *testing.T) {
	action := NewEmailAction("ops@example.com", SMTPConfig{}).
		WithSender(func(string, string, []string, []byte) error {
			return errors.New("connection refused")
		})

	err := action.Execute(context.Background(), "alert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestEmailAction_CancelledContext(t *testing.T) {
	called := false
	action := NewEmailAction("ops@example.com", SMTPConfig{}).
		WithSender(func(string, string, []string, []byte) error {
			called = true
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, action.Execute(ctx, "alert"), context.Canceled)
	assert.False(t, called)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      models.ActionConfig
		wantName string
		wantErr  bool
	}{
		{name: "print", cfg: models.ActionConfig{Type: models.ActionPrint}, wantName: "print"},
		{name: "log", cfg: models.ActionConfig{Type: models.ActionLog}, wantName: "log"},
		{name: "email", cfg: models.ActionConfig{Type: models.ActionEmail, To: "ops@example.com"}, wantName: "email"},
		{name: "email without recipient", cfg: models.ActionConfig{Type: models.ActionEmail}, wantErr: true},
		{name: "email recipient with injected header", cfg: models.ActionConfig{Type: models.ActionEmail, To: "ops@example.com\r\nBcc: all@example.com"}, wantErr: true},
		{name: "unknown", cfg: models.ActionConfig{Type: "sms"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := New(tt.cfg, SMTPConfig{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, action.Name())
		})
	}
}

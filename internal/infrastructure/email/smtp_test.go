package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/orris-inc/helpdesk/internal/application/notification/usecases"
	"github.com/orris-inc/helpdesk/internal/infrastructure/template"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type recordingSender struct {
	messages []*gomail.Message
	err      error
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, m...)
	return nil
}

func newTestMailer(t *testing.T, s sender) *SMTPMailer {
	t.Helper()
	tpl, err := template.NewEmailTemplates("", logger.NewNop())
	require.NoError(t, err)
	m := NewSMTPMailer(SMTPConfig{FromAddress: "support@example.com", FromName: "Support"}, tpl, logger.NewNop())
	m.dialer = s
	return m
}

func TestSMTPMailer_SendAccessEmail(t *testing.T) {
	rec := &recordingSender{}
	m := newTestMailer(t, rec)

	err := m.SendAccessEmail(context.Background(), usecases.AccessEmail{
		To: "ann@example.com", Password: "temp-pass", LoginURL: "https://help.example.com/login", CompanyName: "Acme Co",
	})
	require.NoError(t, err)
	require.Len(t, rec.messages, 1)

	msg := rec.messages[0]
	assert.Equal(t, []string{"ann@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your Acme Co support portal access"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "temp-pass")
}

func TestSMTPMailer_TransportFailure(t *testing.T) {
	m := newTestMailer(t, &recordingSender{err: errors.New("connection refused")})

	err := m.SendAccessEmail(context.Background(), usecases.AccessEmail{To: "ann@example.com", Password: "x"})
	assert.ErrorContains(t, err, "connection refused")
}

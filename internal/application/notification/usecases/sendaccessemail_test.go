package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type mockMailer struct {
	sent []AccessEmail
	err  error
}

func (m *mockMailer) SendAccessEmail(_ context.Context, msg AccessEmail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestSendAccessEmailUseCase(t *testing.T) {
	tests := []struct {
		name      string
		cmd       SendAccessEmailCommand
		mailerErr error
		checkErr  func(error) bool
		wantURL   string
	}{
		{
			name:    "default login url",
			cmd:     SendAccessEmailCommand{Email: "New@Acme.com", Password: "s3cret", CompanyName: " Acme Co "},
			wantURL: "https://help.example.com/login",
		},
		{
			name:    "explicit login url",
			cmd:     SendAccessEmailCommand{Email: "new@acme.com", Password: "s3cret", LoginURL: "https://portal.acme.com"},
			wantURL: "https://portal.acme.com",
		},
		{
			name:     "invalid email",
			cmd:      SendAccessEmailCommand{Email: "nope", Password: "x"},
			checkErr: apperrors.IsValidationError,
		},
		{
			name:     "missing password",
			cmd:      SendAccessEmailCommand{Email: "new@acme.com"},
			checkErr: apperrors.IsValidationError,
		},
		{
			name:      "transport failure is generic",
			cmd:       SendAccessEmailCommand{Email: "new@acme.com", Password: "x"},
			mailerErr: errors.New("smtp: 535 auth failed"),
			checkErr:  apperrors.IsInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &mockMailer{err: tt.mailerErr}
			uc := NewSendAccessEmailUseCase(mailer, "https://help.example.com/login", logger.NewNop())

			err := uc.Execute(context.Background(), tt.cmd)

			if tt.checkErr != nil {
				require.Error(t, err)
				assert.True(t, tt.checkErr(err), "unexpected error: %v", err)
				assert.NotContains(t, err.Error(), "535")
				assert.Empty(t, mailer.sent)
				return
			}
			require.NoError(t, err)
			require.Len(t, mailer.sent, 1)
			assert.Equal(t, "new@acme.com", mailer.sent[0].To)
			assert.Equal(t, tt.wantURL, mailer.sent[0].LoginURL)
		})
	}
}

func TestSendAccessEmailUseCase_NoMailer(t *testing.T) {
	uc := NewSendAccessEmailUseCase(nil, "", logger.NewNop())
	err := uc.Execute(context.Background(), SendAccessEmailCommand{Email: "a@b.co", Password: "x"})
	assert.True(t, apperrors.IsInternalError(err))
}

package usecases

import (
	"context"
	"strings"

	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// AccessEmail carries the data a welcome email is rendered from.
type AccessEmail struct {
	To          string
	Password    string
	LoginURL    string
	CompanyName string
	ClientName  string
}

// AccessMailer delivers welcome emails through the configured transport.
type AccessMailer interface {
	SendAccessEmail(ctx context.Context, msg AccessEmail) error
}

type SendAccessEmailCommand struct {
	Email       string
	Password    string
	LoginURL    string
	CompanyName string
	ClientName  string
}

type SendAccessEmailUseCase struct {
	mailer          AccessMailer
	defaultLoginURL string
	logger          logger.Interface
}

func NewSendAccessEmailUseCase(mailer AccessMailer, defaultLoginURL string, logger logger.Interface) *SendAccessEmailUseCase {
	return &SendAccessEmailUseCase{
		mailer:          mailer,
		defaultLoginURL: defaultLoginURL,
		logger:          logger,
	}
}

func (uc *SendAccessEmailUseCase) Execute(ctx context.Context, cmd SendAccessEmailCommand) error {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return errors.NewValidationError("invalid email", err.Error())
	}
	if strings.TrimSpace(cmd.Password) == "" {
		return errors.NewValidationError("password is required")
	}
	if uc.mailer == nil {
		uc.logger.Warnw("access email requested but no mailer is configured", "email", email.String())
		return errors.NewInternalError("email delivery is not configured")
	}

	loginURL := strings.TrimSpace(cmd.LoginURL)
	if loginURL == "" {
		loginURL = uc.defaultLoginURL
	}

	msg := AccessEmail{
		To:          email.String(),
		Password:    cmd.Password,
		LoginURL:    loginURL,
		CompanyName: strings.TrimSpace(cmd.CompanyName),
		ClientName:  strings.TrimSpace(cmd.ClientName),
	}
	if err := uc.mailer.SendAccessEmail(ctx, msg); err != nil {
		uc.logger.Errorw("failed to send access email", "email", msg.To, "error", err)
		return errors.NewInternalError("failed to send email")
	}

	uc.logger.Infow("access email sent", "email", msg.To)
	return nil
}

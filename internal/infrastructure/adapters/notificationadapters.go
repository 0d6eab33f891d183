package adapters

import (
	"context"

	notificationUsecases "github.com/orris-inc/helpdesk/internal/application/notification/usecases"
	userUsecases "github.com/orris-inc/helpdesk/internal/application/user/usecases"
)

// WelcomeNotifierAdapter lets user creation send welcome mail through the
// access email use case, which owns validation and the default login URL.
type WelcomeNotifierAdapter struct {
	sendAccess *notificationUsecases.SendAccessEmailUseCase
}

func NewWelcomeNotifierAdapter(sendAccess *notificationUsecases.SendAccessEmailUseCase) *WelcomeNotifierAdapter {
	return &WelcomeNotifierAdapter{sendAccess: sendAccess}
}

func (a *WelcomeNotifierAdapter) NotifyWelcome(ctx context.Context, n userUsecases.WelcomeNotification) error {
	return a.sendAccess.Execute(ctx, notificationUsecases.SendAccessEmailCommand{
		Email:       n.Email,
		Password:    n.Password,
		CompanyName: n.CompanyName,
		ClientName:  n.ClientName,
	})
}

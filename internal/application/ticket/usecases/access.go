package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/id"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

func requireCaller(caller *permission.Principal) error {
	if caller == nil || caller.UserID == "" {
		return errors.NewUnauthorizedError("Authentication required")
	}
	return nil
}

// authorize checks the caller first so an anonymous request is never reported as forbidden.
func authorize(authorizer permission.Authorizer, caller *permission.Principal, action permission.Action) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	return authorizer.Authorize(caller.Role, action)
}

func loadTicket(ctx context.Context, repo ticket.Repository, log logger.Interface, ticketID string) (*ticket.Ticket, error) {
	if !id.IsTicketID(ticketID) {
		return nil, errors.NewValidationError("invalid ticket ID", ticketID)
	}
	t, err := repo.GetByID(ctx, ticketID)
	if err != nil {
		log.Errorw("failed to get ticket", "ticket_id", ticketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found", ticketID)
	}
	return t, nil
}

// loadVisibleTicket loads a ticket the caller is allowed to read.
func loadVisibleTicket(ctx context.Context, repo ticket.Repository, log logger.Interface, caller *permission.Principal, ticketID string) (*ticket.Ticket, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	t, err := loadTicket(ctx, repo, log, ticketID)
	if err != nil {
		return nil, err
	}
	if !t.CanBeViewedBy(caller) {
		log.Warnw("ticket access denied", "ticket_id", ticketID, "user_id", caller.UserID, "role", caller.Role)
		return nil, errors.NewForbiddenError(permission.DenialMessage(permission.ActionTicketsReadAny))
	}
	return t, nil
}

// recordUpdate appends a history entry; it runs inside the caller's transaction when one is open.
func recordUpdate(ctx context.Context, repo ticket.UpdateRepository, ticketID string, userID *string, kind vo.UpdateKind, message string) error {
	u, err := ticket.NewUpdate(ticketID, userID, kind, message)
	if err != nil {
		return err
	}
	if err := u.SetID(id.NewUUID()); err != nil {
		return err
	}
	return repo.Create(ctx, u)
}

func callerID(caller *permission.Principal) *string {
	if caller == nil || caller.UserID == "" {
		return nil
	}
	uid := caller.UserID
	return &uid
}

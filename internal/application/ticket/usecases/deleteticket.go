package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	Caller   *permission.Principal
	TicketID string
}

type DeleteTicketUseCase struct {
	ticketRepo ticket.Repository
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.Repository,
	authorizer permission.Authorizer,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Execute removes the ticket with its tag links, comments and history.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionTicketsDelete); err != nil {
		return err
	}
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.Caller.UserID)

	if _, err := loadTicket(ctx, uc.ticketRepo, uc.logger, cmd.TicketID); err != nil {
		return err
	}

	if err := uc.ticketRepo.Delete(ctx, cmd.TicketID); err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		return errors.NewInternalError("failed to delete ticket")
	}

	uc.logger.Infow("ticket deleted successfully", "ticket_id", cmd.TicketID)
	return nil
}

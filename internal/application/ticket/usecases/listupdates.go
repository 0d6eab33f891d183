package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type ListUpdatesQuery struct {
	Caller   *permission.Principal
	TicketID string
}

type ListUpdatesUseCase struct {
	ticketRepo ticket.Repository
	updateRepo ticket.UpdateRepository
	assembler  *Assembler
	logger     logger.Interface
}

func NewListUpdatesUseCase(
	ticketRepo ticket.Repository,
	updateRepo ticket.UpdateRepository,
	assembler *Assembler,
	logger logger.Interface,
) *ListUpdatesUseCase {
	return &ListUpdatesUseCase{
		ticketRepo: ticketRepo,
		updateRepo: updateRepo,
		assembler:  assembler,
		logger:     logger,
	}
}

func (uc *ListUpdatesUseCase) Execute(ctx context.Context, q ListUpdatesQuery) ([]*dto.UpdateDTO, error) {
	t, err := loadVisibleTicket(ctx, uc.ticketRepo, uc.logger, q.Caller, q.TicketID)
	if err != nil {
		return nil, err
	}

	updates, err := uc.updateRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list ticket updates", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to list ticket history")
	}
	return uc.assembler.Updates(ctx, updates)
}

package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	Caller   *permission.Principal
	TicketID string
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	assembler  *Assembler
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.Repository,
	assembler *Assembler,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		assembler:  assembler,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := loadVisibleTicket(ctx, uc.ticketRepo, uc.logger, query.Caller, query.TicketID)
	if err != nil {
		return nil, err
	}
	return uc.assembler.Ticket(ctx, t)
}

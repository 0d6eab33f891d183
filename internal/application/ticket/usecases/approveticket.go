package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type ApproveTicketCommand struct {
	Caller          *permission.Principal
	TicketID        string
	Approved        bool
	RejectionReason string
}

type ApproveTicketUseCase struct {
	ticketRepo ticket.Repository
	updateRepo ticket.UpdateRepository
	txMgr      db.Transactor
	authorizer permission.Authorizer
	assembler  *Assembler
	logger     logger.Interface
}

func NewApproveTicketUseCase(
	ticketRepo ticket.Repository,
	updateRepo ticket.UpdateRepository,
	txMgr db.Transactor,
	authorizer permission.Authorizer,
	assembler *Assembler,
	logger logger.Interface,
) *ApproveTicketUseCase {
	return &ApproveTicketUseCase{
		ticketRepo: ticketRepo,
		updateRepo: updateRepo,
		txMgr:      txMgr,
		authorizer: authorizer,
		assembler:  assembler,
		logger:     logger,
	}
}

// Execute approves or rejects a ticket waiting in the approval queue. The decision is
// written with a conditional update, so a ticket decided concurrently is reported as
// not eligible and left untouched.
func (uc *ApproveTicketUseCase) Execute(ctx context.Context, cmd ApproveTicketCommand) (*dto.TicketDTO, error) {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionTicketsApprove); err != nil {
		return nil, err
	}
	uc.logger.Infow("executing approve ticket use case",
		"ticket_id", cmd.TicketID,
		"approved", cmd.Approved,
		"user_id", cmd.Caller.UserID,
	)

	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	var message string
	if cmd.Approved {
		err = t.Approve(cmd.Caller.UserID)
		message = fmt.Sprintf("Ticket approved by %s", displayName(cmd.Caller))
	} else {
		err = t.Reject(cmd.Caller.UserID, cmd.RejectionReason)
		message = fmt.Sprintf("Ticket rejected by %s: %s", displayName(cmd.Caller), deref(t.RejectionReason()))
	}
	if err != nil {
		uc.logger.Warnw("approval decision refused", "ticket_id", t.ID(), "status", t.Status(), "error", err)
		return nil, err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		saved, err := uc.ticketRepo.SaveDecision(txCtx, t)
		if err != nil {
			return fmt.Errorf("save decision: %w", err)
		}
		if !saved {
			return ticket.ErrNotEligibleForApproval
		}
		return recordUpdate(txCtx, uc.updateRepo, t.ID(), callerID(cmd.Caller), vo.UpdateKindStatusChange, message)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to save approval decision", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to save approval decision")
	}

	uc.logger.Infow("approval decision saved", "ticket_id", t.ID(), "approved", cmd.Approved)
	return uc.assembler.Ticket(ctx, t)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

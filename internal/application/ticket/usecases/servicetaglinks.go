package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type ServiceTagLinkCommand struct {
	Caller       *permission.Principal
	TicketID     string
	ServiceTagID string
}

// ServiceTagLinkUseCase attaches and detaches single service tags. Attaching a linked
// tag and detaching an unlinked one both succeed without changes.
type ServiceTagLinkUseCase struct {
	ticketRepo ticket.Repository
	updateRepo ticket.UpdateRepository
	tagRepo    servicetag.Repository
	txMgr      db.Transactor
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewServiceTagLinkUseCase(
	ticketRepo ticket.Repository,
	updateRepo ticket.UpdateRepository,
	tagRepo servicetag.Repository,
	txMgr db.Transactor,
	authorizer permission.Authorizer,
	logger logger.Interface,
) *ServiceTagLinkUseCase {
	return &ServiceTagLinkUseCase{
		ticketRepo: ticketRepo,
		updateRepo: updateRepo,
		tagRepo:    tagRepo,
		txMgr:      txMgr,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (uc *ServiceTagLinkUseCase) Attach(ctx context.Context, cmd ServiceTagLinkCommand) error {
	t, tag, err := uc.load(ctx, cmd)
	if err != nil {
		return err
	}
	if tag.ClientID() != t.ClientID() {
		return errors.NewBadRequestError("Service tag belongs to a different client", tag.Tag())
	}
	if t.HasServiceTag(tag.ID()) {
		return nil
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.AttachServiceTag(txCtx, t.ID(), tag.ID()); err != nil {
			return err
		}
		msg := fmt.Sprintf("Service tag %s attached", tag.Tag())
		return recordUpdate(txCtx, uc.updateRepo, t.ID(), callerID(cmd.Caller), vo.UpdateKindOther, msg)
	})
	if err != nil {
		uc.logger.Errorw("failed to attach service tag", "ticket_id", t.ID(), "service_tag_id", tag.ID(), "error", err)
		return errors.NewInternalError("failed to attach service tag")
	}
	uc.logger.Infow("service tag attached", "ticket_id", t.ID(), "service_tag_id", tag.ID())
	return nil
}

func (uc *ServiceTagLinkUseCase) Detach(ctx context.Context, cmd ServiceTagLinkCommand) error {
	t, tag, err := uc.load(ctx, cmd)
	if err != nil {
		return err
	}
	if !t.HasServiceTag(tag.ID()) {
		return nil
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.DetachServiceTag(txCtx, t.ID(), tag.ID()); err != nil {
			return err
		}
		msg := fmt.Sprintf("Service tag %s detached", tag.Tag())
		return recordUpdate(txCtx, uc.updateRepo, t.ID(), callerID(cmd.Caller), vo.UpdateKindOther, msg)
	})
	if err != nil {
		uc.logger.Errorw("failed to detach service tag", "ticket_id", t.ID(), "service_tag_id", tag.ID(), "error", err)
		return errors.NewInternalError("failed to detach service tag")
	}
	uc.logger.Infow("service tag detached", "ticket_id", t.ID(), "service_tag_id", tag.ID())
	return nil
}

func (uc *ServiceTagLinkUseCase) load(ctx context.Context, cmd ServiceTagLinkCommand) (*ticket.Ticket, *servicetag.ServiceTag, error) {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionTicketsUpdate); err != nil {
		return nil, nil, err
	}
	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, cmd.TicketID)
	if err != nil {
		return nil, nil, err
	}
	tag, err := uc.tagRepo.GetByID(ctx, cmd.ServiceTagID)
	if err != nil {
		uc.logger.Errorw("failed to get service tag", "service_tag_id", cmd.ServiceTagID, "error", err)
		return nil, nil, errors.NewInternalError("failed to get service tag")
	}
	if tag == nil {
		return nil, nil, errors.NewNotFoundError("service tag not found", cmd.ServiceTagID)
	}
	return t, tag, nil
}

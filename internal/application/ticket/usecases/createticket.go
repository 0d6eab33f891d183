package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Caller        *permission.Principal
	Title         string
	Description   string
	Priority      string
	Source        string
	ClientID      string
	ServiceTagIDs []string
}

type CreateTicketUseCase struct {
	ticketRepo ticket.Repository
	updateRepo ticket.UpdateRepository
	clientRepo client.Repository
	tagRepo    servicetag.Repository
	idGen      ticket.IDGenerator
	txMgr      db.Transactor
	authorizer permission.Authorizer
	assembler  *Assembler
	settings   Settings
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	updateRepo ticket.UpdateRepository,
	clientRepo client.Repository,
	tagRepo servicetag.Repository,
	idGen ticket.IDGenerator,
	txMgr db.Transactor,
	authorizer permission.Authorizer,
	assembler *Assembler,
	settings Settings,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		updateRepo: updateRepo,
		clientRepo: clientRepo,
		tagRepo:    tagRepo,
		idGen:      idGen,
		txMgr:      txMgr,
		authorizer: authorizer,
		assembler:  assembler,
		settings:   settings.withDefaults(),
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionTicketsCreate); err != nil {
		return nil, err
	}
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "user_id", cmd.Caller.UserID)

	clientID, err := uc.resolveClientID(ctx, cmd)
	if err != nil {
		return nil, err
	}

	priority, err := vo.PriorityOrDefault(cmd.Priority, uc.settings.DefaultPriority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	source := vo.SourceWeb
	if cmd.Source != "" {
		if source, err = vo.NewSource(cmd.Source); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	newTicket, err := ticket.NewTicket(cmd.Title, cmd.Description, priority, source, clientID, cmd.Caller.UserID)
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if len(cmd.ServiceTagIDs) > 0 {
		if err := checkTagsBelongToClient(ctx, uc.tagRepo, uc.logger, clientID, cmd.ServiceTagIDs); err != nil {
			return nil, err
		}
		newTicket.SetServiceTags(cmd.ServiceTagIDs)
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		ticketID, err := uc.idGen.Next(txCtx)
		if err != nil {
			return fmt.Errorf("allocate ticket id: %w", err)
		}
		if err := newTicket.SetID(ticketID); err != nil {
			return err
		}
		if err := uc.ticketRepo.Create(txCtx, newTicket); err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}
		if tags := newTicket.ServiceTagIDs(); len(tags) > 0 {
			if err := uc.ticketRepo.ReplaceServiceTags(txCtx, ticketID, tags); err != nil {
				return fmt.Errorf("link service tags: %w", err)
			}
		}
		msg := fmt.Sprintf("Ticket created by %s", displayName(cmd.Caller))
		return recordUpdate(txCtx, uc.updateRepo, ticketID, callerID(cmd.Caller), vo.UpdateKindOther, msg)
	})
	if err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "client_id", clientID)
	return uc.assembler.Ticket(ctx, newTicket)
}

// resolveClientID binds client-role callers to their own client; staff must name an existing one.
func (uc *CreateTicketUseCase) resolveClientID(ctx context.Context, cmd CreateTicketCommand) (string, error) {
	if cmd.Caller.Role.IsClient() {
		if cmd.Caller.ClientID == nil || *cmd.Caller.ClientID == "" {
			return "", errors.NewForbiddenError("Your account is not linked to a client")
		}
		if cmd.ClientID != "" && cmd.ClientID != *cmd.Caller.ClientID {
			return "", errors.NewForbiddenError("You can only create tickets for your own company")
		}
		return *cmd.Caller.ClientID, nil
	}

	if cmd.ClientID == "" {
		return "", errors.NewValidationError("client_id is required")
	}
	c, err := uc.clientRepo.GetByID(ctx, cmd.ClientID)
	if err != nil {
		uc.logger.Errorw("failed to get client", "client_id", cmd.ClientID, "error", err)
		return "", errors.NewInternalError("failed to create ticket")
	}
	if c == nil {
		return "", errors.NewNotFoundError("client not found", cmd.ClientID)
	}
	return c.ID(), nil
}

func checkTagsBelongToClient(ctx context.Context, repo servicetag.Repository, log logger.Interface, clientID string, tagIDs []string) error {
	tags, err := repo.GetByIDs(ctx, tagIDs)
	if err != nil {
		log.Errorw("failed to load service tags", "error", err)
		return errors.NewInternalError("failed to load service tags")
	}
	found := make(map[string]*servicetag.ServiceTag, len(tags))
	for _, t := range tags {
		found[t.ID()] = t
	}
	for _, tagID := range tagIDs {
		t, ok := found[tagID]
		if !ok {
			return errors.NewNotFoundError("service tag not found", tagID)
		}
		if t.ClientID() != clientID {
			return errors.NewBadRequestError("Service tag belongs to a different client", t.Tag())
		}
	}
	return nil
}

func displayName(p *permission.Principal) string {
	if p == nil {
		return "system"
	}
	if p.Name != "" {
		return p.Name
	}
	if p.Email != "" {
		return p.Email
	}
	return p.UserID
}

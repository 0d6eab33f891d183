package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// UpdateTicketCommand is a patch: nil fields are left alone. AssigneeSet with a nil
// AssigneeID unassigns the ticket.
type UpdateTicketCommand struct {
	Caller        *permission.Principal
	TicketID      string
	Title         *string
	Description   *string
	Status        *string
	Priority      *string
	AssigneeSet   bool
	AssigneeID    *string
	ServiceTagIDs *[]string
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.Repository
	updateRepo ticket.UpdateRepository
	userRepo   user.Repository
	tagRepo    servicetag.Repository
	txMgr      db.Transactor
	authorizer permission.Authorizer
	assembler  *Assembler
	settings   Settings
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.Repository,
	updateRepo ticket.UpdateRepository,
	userRepo user.Repository,
	tagRepo servicetag.Repository,
	txMgr db.Transactor,
	authorizer permission.Authorizer,
	assembler *Assembler,
	settings Settings,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		updateRepo: updateRepo,
		userRepo:   userRepo,
		tagRepo:    tagRepo,
		txMgr:      txMgr,
		authorizer: authorizer,
		assembler:  assembler,
		settings:   settings.withDefaults(),
		logger:     logger,
	}
}

type historyEntry struct {
	kind    vo.UpdateKind
	message string
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionTicketsUpdate); err != nil {
		return nil, err
	}
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.Caller.UserID)

	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.apply(ctx, t, cmd)
	if err != nil {
		return nil, err
	}

	tagsChanged := cmd.ServiceTagIDs != nil
	if len(entries) == 0 && !tagsChanged {
		return uc.assembler.Ticket(ctx, t)
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("update ticket: %w", err)
		}
		if tagsChanged {
			if err := uc.ticketRepo.ReplaceServiceTags(txCtx, t.ID(), t.ServiceTagIDs()); err != nil {
				return fmt.Errorf("replace service tags: %w", err)
			}
		}
		for _, e := range entries {
			if err := recordUpdate(txCtx, uc.updateRepo, t.ID(), callerID(cmd.Caller), e.kind, e.message); err != nil {
				return fmt.Errorf("record history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", t.ID(), "changes", len(entries))
	return uc.assembler.Ticket(ctx, t)
}

// apply mutates the ticket and returns one history entry per effective change.
// Every field is validated before anything is persisted.
func (uc *UpdateTicketUseCase) apply(ctx context.Context, t *ticket.Ticket, cmd UpdateTicketCommand) ([]historyEntry, error) {
	var entries []historyEntry

	if cmd.Title != nil {
		changed, err := t.UpdateTitle(*cmd.Title)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if changed {
			entries = append(entries, historyEntry{vo.UpdateKindOther, "Title updated"})
		}
	}

	if cmd.Description != nil {
		changed, err := t.UpdateDescription(*cmd.Description)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if changed {
			entries = append(entries, historyEntry{vo.UpdateKindOther, "Description updated"})
		}
	}

	if cmd.Priority != nil {
		p, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		from := t.Priority()
		changed, err := t.ChangePriority(p)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if changed {
			entries = append(entries, historyEntry{vo.UpdateKindOther, fmt.Sprintf("Priority changed from %s to %s", from, p)})
		}
	}

	if cmd.Status != nil {
		status, err := vo.NewTicketStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		from := t.Status()
		changed, err := t.ChangeStatus(status, uc.settings.Policy)
		if err != nil {
			if errors.IsAppError(err) {
				return nil, err
			}
			return nil, errors.NewValidationError(err.Error())
		}
		if changed {
			entries = append(entries, historyEntry{vo.UpdateKindStatusChange, fmt.Sprintf("Status changed from %s to %s", from, status)})
		}
	}

	if cmd.AssigneeSet {
		entry, err := uc.applyAssignee(ctx, t, cmd.AssigneeID)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			entries = append(entries, *entry)
		}
	}

	if cmd.ServiceTagIDs != nil {
		tagIDs := *cmd.ServiceTagIDs
		if len(tagIDs) > 0 {
			if err := checkTagsBelongToClient(ctx, uc.tagRepo, uc.logger, t.ClientID(), tagIDs); err != nil {
				return nil, err
			}
		}
		if !sameIDs(t.ServiceTagIDs(), tagIDs) {
			entries = append(entries, historyEntry{vo.UpdateKindOther, "Service tags updated"})
		}
		t.SetServiceTags(tagIDs)
	}

	return entries, nil
}

func (uc *UpdateTicketUseCase) applyAssignee(ctx context.Context, t *ticket.Ticket, assigneeID *string) (*historyEntry, error) {
	if assigneeID == nil || *assigneeID == "" {
		if !t.AssignTo(nil) {
			return nil, nil
		}
		return &historyEntry{vo.UpdateKindAssignment, "Unassigned"}, nil
	}

	assignee, err := uc.userRepo.GetByID(ctx, *assigneeID)
	if err != nil {
		uc.logger.Errorw("failed to get assignee", "user_id", *assigneeID, "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}
	if assignee == nil {
		return nil, errors.NewNotFoundError("assignee not found", *assigneeID)
	}
	if !assignee.IsAssignable() {
		return nil, errors.NewBadRequestError("Tickets can only be assigned to active staff members", assignee.Name())
	}
	if !t.AssignTo(assigneeID) {
		return nil, nil
	}
	return &historyEntry{vo.UpdateKindAssignment, fmt.Sprintf("Assigned to %s", assignee.Name())}, nil
}

func sameIDs(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	seen := make(map[string]bool, len(b))
	for _, v := range b {
		if !set[v] {
			return false
		}
		seen[v] = true
	}
	return len(seen) == len(set)
}

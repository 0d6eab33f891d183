package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

type ListTicketsQuery struct {
	Caller     *permission.Principal
	Statuses   []string
	Priority   string
	ClientID   string
	AssigneeID string
	Unassigned bool
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketDTO
	Total    int64
	Page     int
	PageSize int
}

// listScope selects which tickets a list variant may return.
type listScope int

const (
	scopeStaff listScope = iota
	scopeMine
	scopePending
)

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	authorizer permission.Authorizer
	assembler  *Assembler
	logger     logger.Interface
	scope      listScope
}

// NewListTicketsUseCase lists every ticket for staff. Tickets awaiting approval are
// left out unless a status filter asks for them.
func NewListTicketsUseCase(
	ticketRepo ticket.Repository,
	authorizer permission.Authorizer,
	assembler *Assembler,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, authorizer: authorizer, assembler: assembler, logger: logger, scope: scopeStaff}
}

// NewListMyTicketsUseCase lists a client user's company tickets, or a staff member's assigned tickets.
func NewListMyTicketsUseCase(
	ticketRepo ticket.Repository,
	authorizer permission.Authorizer,
	assembler *Assembler,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, authorizer: authorizer, assembler: assembler, logger: logger, scope: scopeMine}
}

// NewListPendingTicketsUseCase lists the approval queue.
func NewListPendingTicketsUseCase(
	ticketRepo ticket.Repository,
	authorizer permission.Authorizer,
	assembler *Assembler,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, authorizer: authorizer, assembler: assembler, logger: logger, scope: scopePending}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	if err := uc.authorizeScope(q.Caller); err != nil {
		return nil, err
	}

	filter, err := uc.buildFilter(q)
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	items, err := uc.assembler.Tickets(ctx, tickets)
	if err != nil {
		return nil, err
	}

	return &ListTicketsResult{
		Tickets:  items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}

func (uc *ListTicketsUseCase) buildFilter(q ListTicketsQuery) (ticket.ListFilter, error) {
	filter := ticket.ListFilter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(q.Page, q.PageSize),
			query.WithSort(q.SortBy, q.SortOrder),
		),
		Search:     q.Search,
		Unassigned: q.Unassigned,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}

	for _, s := range q.Statuses {
		status, err := vo.NewTicketStatus(s)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	if q.Priority != "" {
		p, err := vo.NewPriority(q.Priority)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Priority = &p
	}
	if q.AssigneeID != "" {
		assignee := q.AssigneeID
		filter.AssigneeID = &assignee
	}

	switch uc.scope {
	case scopePending:
		filter.Statuses = nil
		filter.PendingQueue = true
		if q.ClientID != "" {
			clientID := q.ClientID
			filter.ClientID = &clientID
		}

	case scopeMine:
		if q.Caller.Role.IsClient() {
			if q.Caller.ClientID == nil {
				return filter, errors.NewForbiddenError("Your account is not linked to a client")
			}
			clientID := *q.Caller.ClientID
			filter.ClientID = &clientID
		} else {
			uid := q.Caller.UserID
			filter.AssigneeID = &uid
			filter.Unassigned = false
		}

	default:
		if q.ClientID != "" {
			clientID := q.ClientID
			filter.ClientID = &clientID
		}
		if len(filter.Statuses) == 0 {
			filter.Statuses = workflowStatuses()
		}
	}
	return filter, nil
}

func (uc *ListTicketsUseCase) authorizeScope(caller *permission.Principal) error {
	switch uc.scope {
	case scopePending:
		return authorize(uc.authorizer, caller, permission.ActionTicketsListPending)
	case scopeMine:
		return requireCaller(caller)
	default:
		return authorize(uc.authorizer, caller, permission.ActionTicketsList)
	}
}

// workflowStatuses are all statuses past the approval gate.
func workflowStatuses() []vo.TicketStatus {
	out := make([]vo.TicketStatus, 0, len(vo.AllStatuses))
	for _, s := range vo.AllStatuses {
		if !s.IsPendingApproval() {
			out = append(out, s)
		}
	}
	return out
}

package ticket

import (
	"context"

	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

// Repository persists tickets and their service-tag links.
// GetByID returns (nil, nil) when the ticket does not exist.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*Ticket, int64, error)

	// SaveDecision persists an approval or rejection only while the row is still
	// pending and not rejected. It reports whether the row was updated.
	SaveDecision(ctx context.Context, t *Ticket) (bool, error)

	ReplaceServiceTags(ctx context.Context, ticketID string, tagIDs []string) error
	AttachServiceTag(ctx context.Context, ticketID, tagID string) error
	DetachServiceTag(ctx context.Context, ticketID, tagID string) error

	CountByAssignee(ctx context.Context, userID string) (int64, error)
	CountByClient(ctx context.Context, clientID string) (int64, error)
	CountByServiceTag(ctx context.Context, tagID string) (int64, error)
}

type ListFilter struct {
	query.BaseFilter
	Statuses   []vo.TicketStatus
	Priority   *vo.Priority
	ClientID   *string
	AssigneeID *string
	Unassigned bool
	Search     string

	// PendingQueue selects tickets awaiting a decision (pending, not rejected).
	PendingQueue bool
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	// GetByID includes soft-deleted comments; returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListByTicket(ctx context.Context, ticketID string) ([]*Comment, error)
	SoftDelete(ctx context.Context, c *Comment) error
}

type UpdateRepository interface {
	Create(ctx context.Context, u *Update) error
	ListByTicket(ctx context.Context, ticketID string) ([]*Update, error)
}

// IDGenerator allocates TK-###### identifiers.
type IDGenerator interface {
	Next(ctx context.Context) (string, error)
}

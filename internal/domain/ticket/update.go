package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// Update is a ticket history entry. Its kind is fixed when it is written.
type Update struct {
	id        string
	ticketID  string
	userID    *string
	kind      vo.UpdateKind
	message   string
	createdAt time.Time
}

// NewUpdate builds a history entry. userID is nil for system-originated entries.
func NewUpdate(ticketID string, userID *string, kind vo.UpdateKind, message string) (*Update, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid update kind: %s", kind)
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("update message is required")
	}

	return &Update{
		ticketID:  ticketID,
		userID:    userID,
		kind:      kind,
		message:   message,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructUpdate(id, ticketID string, userID *string, kind vo.UpdateKind, message string, createdAt time.Time) (*Update, error) {
	if id == "" {
		return nil, fmt.Errorf("update ID cannot be empty")
	}
	if !kind.IsValid() {
		kind = vo.UpdateKindOther
	}
	return &Update{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		kind:      kind,
		message:   message,
		createdAt: createdAt,
	}, nil
}

func (u *Update) ID() string {
	return u.id
}

func (u *Update) TicketID() string {
	return u.ticketID
}

func (u *Update) UserID() *string {
	return u.userID
}

func (u *Update) Kind() vo.UpdateKind {
	return u.kind
}

func (u *Update) Message() string {
	return u.message
}

func (u *Update) CreatedAt() time.Time {
	return u.createdAt
}

func (u *Update) SetID(id string) error {
	if u.id != "" {
		return fmt.Errorf("update ID is already set")
	}
	u.id = id
	return nil
}

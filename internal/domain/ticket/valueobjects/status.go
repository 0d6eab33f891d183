package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusPendingApproval TicketStatus = "pending_approval"
	StatusOpen            TicketStatus = "open"
	StatusInProgress      TicketStatus = "in_progress"
	StatusResolved        TicketStatus = "resolved"
	StatusClosed          TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusPendingApproval: true,
	StatusOpen:            true,
	StatusInProgress:      true,
	StatusResolved:        true,
	StatusClosed:          true,
}

// AllStatuses lists statuses in workflow order.
var AllStatuses = []TicketStatus{
	StatusPendingApproval,
	StatusOpen,
	StatusInProgress,
	StatusResolved,
	StatusClosed,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsPendingApproval() bool {
	return ts == StatusPendingApproval
}

// IsFinished is true for statuses that carry a closed timestamp.
func (ts TicketStatus) IsFinished() bool {
	return ts == StatusResolved || ts == StatusClosed
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}

package ticket

import (
	"fmt"

	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

var (
	ErrApprovalRequired = errors.NewBadRequestError(
		"Status change not allowed",
		"tickets only enter or leave pending_approval through the approval workflow",
	)
	ErrNotEligibleForApproval = errors.NewBadRequestError(
		"Ticket is not eligible for approval",
		"only tickets pending approval that have not been rejected can be approved or rejected",
	)
	ErrRejectionReasonRequired = errors.NewValidationError("A rejection reason is required")
)

func newTransitionError(from, to vo.TicketStatus) error {
	return errors.NewBadRequestError(
		"Status change not allowed",
		fmt.Sprintf("cannot move a ticket from %s to %s", from, to),
	)
}

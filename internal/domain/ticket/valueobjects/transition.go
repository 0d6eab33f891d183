package valueobjects

// TransitionPolicy decides which status writes the update path accepts.
// Moves into or out of pending_approval are gated by the approval workflow
// before any policy is consulted.
type TransitionPolicy interface {
	Allows(from, to TicketStatus) bool
	Name() string
}

// PermissivePolicy accepts any status write, including closed -> open.
type PermissivePolicy struct{}

func (PermissivePolicy) Allows(from, to TicketStatus) bool {
	return from.IsValid() && to.IsValid()
}

func (PermissivePolicy) Name() string { return "permissive" }

var forwardTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen:       {StatusInProgress, StatusResolved},
	StatusInProgress: {StatusOpen, StatusResolved},
	StatusResolved:   {StatusClosed},
}

// ForwardOnlyPolicy enforces open <-> in_progress and {open, in_progress} -> resolved -> closed.
type ForwardOnlyPolicy struct{}

func (ForwardOnlyPolicy) Allows(from, to TicketStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range forwardTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (ForwardOnlyPolicy) Name() string { return "forward_only" }

// NewTransitionPolicy picks the policy from configuration.
func NewTransitionPolicy(enforceForward bool) TransitionPolicy {
	if enforceForward {
		return ForwardOnlyPolicy{}
	}
	return PermissivePolicy{}
}

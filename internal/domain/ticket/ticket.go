package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
)

// Contact is the requester snapshot captured by public intake.
type Contact struct {
	Name  string
	Email string
	Phone string
}

type Ticket struct {
	id              string
	title           string
	description     string
	status          vo.TicketStatus
	priority        vo.Priority
	source          vo.Source
	clientID        string
	reporterID      *string
	assigneeID      *string
	contact         Contact
	photoURLs       []string
	serviceTagIDs   []string
	approvedBy      *string
	approvedAt      *time.Time
	rejectedBy      *string
	rejectedAt      *time.Time
	rejectionReason *string
	openedAt        *time.Time
	closedAt        *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

func validateText(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLength)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("description is required")
	}
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", MaxDescriptionLength)
	}
	return nil
}

// NewTicket creates a directly submitted ticket. It starts open with the caller as reporter.
func NewTicket(
	title string,
	description string,
	priority vo.Priority,
	source vo.Source,
	clientID string,
	reporterID string,
) (*Ticket, error) {
	if err := validateText(title, description); err != nil {
		return nil, err
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("invalid source")
	}
	if clientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if reporterID == "" {
		return nil, fmt.Errorf("reporter ID is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		title:         strings.TrimSpace(title),
		description:   description,
		status:        vo.StatusOpen,
		priority:      priority,
		source:        source,
		clientID:      clientID,
		reporterID:    &reporterID,
		photoURLs:     []string{},
		serviceTagIDs: []string{},
		openedAt:      &now,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// NewPublicTicket creates an anonymously submitted ticket awaiting approval.
func NewPublicTicket(
	title string,
	description string,
	priority vo.Priority,
	source vo.Source,
	clientID string,
	contact Contact,
	photoURL string,
) (*Ticket, error) {
	if err := validateText(title, description); err != nil {
		return nil, err
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("invalid source")
	}
	if clientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}

	photos := []string{}
	if photoURL != "" {
		photos = append(photos, photoURL)
	}

	now := biztime.NowUTC()
	return &Ticket{
		title:         strings.TrimSpace(title),
		description:   description,
		status:        vo.StatusPendingApproval,
		priority:      priority,
		source:        source,
		clientID:      clientID,
		contact:       contact,
		photoURLs:     photos,
		serviceTagIDs: []string{},
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Snapshot carries persisted state back into an aggregate.
type Snapshot struct {
	ID              string
	Title           string
	Description     string
	Status          vo.TicketStatus
	Priority        vo.Priority
	Source          vo.Source
	ClientID        string
	ReporterID      *string
	AssigneeID      *string
	Contact         Contact
	PhotoURLs       []string
	ServiceTagIDs   []string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectedBy      *string
	RejectedAt      *time.Time
	RejectionReason *string
	OpenedAt        *time.Time
	ClosedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func ReconstructTicket(s Snapshot) (*Ticket, error) {
	if s.ID == "" {
		return nil, fmt.Errorf("ticket ID cannot be empty")
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", s.Status)
	}
	if !s.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", s.Priority)
	}
	if !s.Source.IsValid() {
		return nil, fmt.Errorf("invalid source: %s", s.Source)
	}

	photos := s.PhotoURLs
	if photos == nil {
		photos = []string{}
	}
	tags := s.ServiceTagIDs
	if tags == nil {
		tags = []string{}
	}

	return &Ticket{
		id:              s.ID,
		title:           s.Title,
		description:     s.Description,
		status:          s.Status,
		priority:        s.Priority,
		source:          s.Source,
		clientID:        s.ClientID,
		reporterID:      s.ReporterID,
		assigneeID:      s.AssigneeID,
		contact:         s.Contact,
		photoURLs:       photos,
		serviceTagIDs:   tags,
		approvedBy:      s.ApprovedBy,
		approvedAt:      s.ApprovedAt,
		rejectedBy:      s.RejectedBy,
		rejectedAt:      s.RejectedAt,
		rejectionReason: s.RejectionReason,
		openedAt:        s.OpenedAt,
		closedAt:        s.ClosedAt,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}, nil
}

func (t *Ticket) ID() string {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Source() vo.Source {
	return t.source
}

func (t *Ticket) ClientID() string {
	return t.clientID
}

func (t *Ticket) ReporterID() *string {
	return t.reporterID
}

func (t *Ticket) AssigneeID() *string {
	return t.assigneeID
}

func (t *Ticket) Contact() Contact {
	return t.contact
}

func (t *Ticket) ApprovedBy() *string {
	return t.approvedBy
}

func (t *Ticket) ApprovedAt() *time.Time {
	return t.approvedAt
}

func (t *Ticket) RejectedBy() *string {
	return t.rejectedBy
}

func (t *Ticket) RejectedAt() *time.Time {
	return t.rejectedAt
}

func (t *Ticket) RejectionReason() *string {
	return t.rejectionReason
}

func (t *Ticket) OpenedAt() *time.Time {
	return t.openedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) PhotoURLs() []string {
	out := make([]string, len(t.photoURLs))
	copy(out, t.photoURLs)
	return out
}

func (t *Ticket) ServiceTagIDs() []string {
	out := make([]string, len(t.serviceTagIDs))
	copy(out, t.serviceTagIDs)
	return out
}

func (t *Ticket) SetID(id string) error {
	if t.id != "" {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == "" {
		return fmt.Errorf("ticket ID cannot be empty")
	}
	t.id = id
	return nil
}

func (t *Ticket) touch() {
	t.updatedAt = biztime.NowUTC()
}

// UpdateTitle reports whether the title changed.
func (t *Ticket) UpdateTitle(title string) (bool, error) {
	if err := validateText(title, t.description); err != nil {
		return false, err
	}
	title = strings.TrimSpace(title)
	if title == t.title {
		return false, nil
	}
	t.title = title
	t.touch()
	return true, nil
}

func (t *Ticket) UpdateDescription(description string) (bool, error) {
	if err := validateText(t.title, description); err != nil {
		return false, err
	}
	if description == t.description {
		return false, nil
	}
	t.description = description
	t.touch()
	return true, nil
}

func (t *Ticket) ChangePriority(p vo.Priority) (bool, error) {
	if !p.IsValid() {
		return false, fmt.Errorf("invalid priority: %s", p)
	}
	if p == t.priority {
		return false, nil
	}
	t.priority = p
	t.touch()
	return true, nil
}

// ChangeStatus applies a status write from the update path. pending_approval is
// reachable only through Approve; resolved and closed stamp closedAt the first
// time, and leaving them clears it.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus, policy vo.TransitionPolicy) (bool, error) {
	if !newStatus.IsValid() {
		return false, fmt.Errorf("invalid status: %s", newStatus)
	}
	if newStatus == t.status {
		return false, nil
	}
	if t.status.IsPendingApproval() || newStatus.IsPendingApproval() {
		return false, ErrApprovalRequired
	}
	if !policy.Allows(t.status, newStatus) {
		return false, newTransitionError(t.status, newStatus)
	}

	now := biztime.NowUTC()
	t.status = newStatus
	if newStatus.IsFinished() {
		if t.closedAt == nil {
			t.closedAt = &now
		}
	} else {
		t.closedAt = nil
	}
	t.updatedAt = now
	return true, nil
}

// AssignTo sets or, with nil, clears the assignee.
func (t *Ticket) AssignTo(assigneeID *string) bool {
	if sameRef(t.assigneeID, assigneeID) {
		return false
	}
	if assigneeID == nil || *assigneeID == "" {
		t.assigneeID = nil
	} else {
		id := *assigneeID
		t.assigneeID = &id
	}
	t.touch()
	return true
}

// SetServiceTags replaces the linked tag set, dropping duplicates and keeping order.
func (t *Ticket) SetServiceTags(tagIDs []string) {
	seen := make(map[string]bool, len(tagIDs))
	out := make([]string, 0, len(tagIDs))
	for _, id := range tagIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	t.serviceTagIDs = out
}

func (t *Ticket) HasServiceTag(tagID string) bool {
	for _, id := range t.serviceTagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

func (t *Ticket) IsRejected() bool {
	return t.rejectedAt != nil
}

// IsEligibleForApproval is true while the ticket waits in the approval queue.
func (t *Ticket) IsEligibleForApproval() bool {
	return t.status.IsPendingApproval() && !t.IsRejected()
}

// Approve moves a pending ticket to open and records the approver.
func (t *Ticket) Approve(approverID string) error {
	if !t.IsEligibleForApproval() {
		return ErrNotEligibleForApproval
	}
	now := biztime.NowUTC()
	t.status = vo.StatusOpen
	t.approvedBy = &approverID
	t.approvedAt = &now
	t.openedAt = &now
	t.updatedAt = now
	return nil
}

// Reject records the decision; the ticket stays in pending_approval and leaves the queue.
func (t *Ticket) Reject(approverID, reason string) error {
	if !t.IsEligibleForApproval() {
		return ErrNotEligibleForApproval
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrRejectionReasonRequired
	}
	now := biztime.NowUTC()
	t.rejectedBy = &approverID
	t.rejectedAt = &now
	t.rejectionReason = &reason
	t.updatedAt = now
	return nil
}

// CanBeViewedBy: staff see every ticket, client users only their own client's.
func (t *Ticket) CanBeViewedBy(p *permission.Principal) bool {
	if p == nil {
		return false
	}
	if p.Role.IsStaff() {
		return true
	}
	return p.Role.IsClient() && p.OwnsClient(t.clientID)
}

func sameRef(a, b *string) bool {
	aEmpty := a == nil || *a == ""
	bEmpty := b == nil || *b == ""
	if aEmpty || bEmpty {
		return aEmpty == bEmpty
	}
	return *a == *b
}

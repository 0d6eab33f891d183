package ticket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
)

func strPtr(s string) *string { return &s }

func newOpenTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("Printer down", "Tray 2 jams", vo.PriorityMedium, vo.SourceWeb, "client-1", "user-1")
	require.NoError(t, err)
	require.NoError(t, tk.SetID("TK-000001"))
	return tk
}

func newPendingTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewPublicTicket("Printer down", "Tray 2 jams", vo.PriorityMedium, vo.SourceWeb, "client-1",
		Contact{Name: "Ann", Email: "a@acme.com", Phone: "555"}, "https://cdn/p.jpg")
	require.NoError(t, err)
	require.NoError(t, tk.SetID("TK-000002"))
	return tk
}

func TestNewTicket(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		priority    vo.Priority
		source      vo.Source
		clientID    string
		reporterID  string
		wantErr     string
	}{
		{"valid", "Printer down", "jams", vo.PriorityHigh, vo.SourceEmail, "c", "u", ""},
		{"blank title", "   ", "jams", vo.PriorityHigh, vo.SourceEmail, "c", "u", "title is required"},
		{"long title", strings.Repeat("x", MaxTitleLength+1), "jams", vo.PriorityHigh, vo.SourceEmail, "c", "u", "title exceeds"},
		{"missing description", "t", "", vo.PriorityHigh, vo.SourceEmail, "c", "u", "description is required"},
		{"bad priority", "t", "d", vo.Priority("urgent"), vo.SourceEmail, "c", "u", "invalid priority"},
		{"bad source", "t", "d", vo.PriorityLow, vo.Source("fax"), "c", "u", "invalid source"},
		{"no client", "t", "d", vo.PriorityLow, vo.SourcePhone, "", "u", "client ID is required"},
		{"no reporter", "t", "d", vo.PriorityLow, vo.SourcePhone, "c", "", "reporter ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.title, tt.description, tt.priority, tt.source, tt.clientID, tt.reporterID)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusOpen, tk.Status())
			assert.NotNil(t, tk.OpenedAt())
			assert.Nil(t, tk.ClosedAt())
			assert.Equal(t, "u", *tk.ReporterID())
		})
	}
}

func TestNewPublicTicket_StartsPendingApproval(t *testing.T) {
	tk := newPendingTicket(t)

	assert.Equal(t, vo.StatusPendingApproval, tk.Status())
	assert.Nil(t, tk.ReporterID())
	assert.Nil(t, tk.OpenedAt())
	assert.Equal(t, []string{"https://cdn/p.jpg"}, tk.PhotoURLs())
	assert.True(t, tk.IsEligibleForApproval())
}

func TestChangeStatus_ClosedTimestamp(t *testing.T) {
	tk := newOpenTicket(t)
	policy := vo.PermissivePolicy{}

	changed, err := tk.ChangeStatus(vo.StatusResolved, policy)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, tk.ClosedAt())
	firstClosed := *tk.ClosedAt()

	_, err = tk.ChangeStatus(vo.StatusClosed, policy)
	require.NoError(t, err)
	assert.Equal(t, firstClosed, *tk.ClosedAt(), "closing after resolve keeps the first timestamp")

	_, err = tk.ChangeStatus(vo.StatusOpen, policy)
	require.NoError(t, err)
	assert.Nil(t, tk.ClosedAt())
}

func TestChangeStatus_SameStatusIsNoop(t *testing.T) {
	tk := newOpenTicket(t)
	changed, err := tk.ChangeStatus(vo.StatusOpen, vo.ForwardOnlyPolicy{})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestChangeStatus_ApprovalGate(t *testing.T) {
	open := newOpenTicket(t)
	_, err := open.ChangeStatus(vo.StatusPendingApproval, vo.PermissivePolicy{})
	assert.ErrorIs(t, err, ErrApprovalRequired)

	pending := newPendingTicket(t)
	_, err = pending.ChangeStatus(vo.StatusOpen, vo.PermissivePolicy{})
	assert.ErrorIs(t, err, ErrApprovalRequired)
	assert.Equal(t, vo.StatusPendingApproval, pending.Status())
}

func TestChangeStatus_ForwardOnly(t *testing.T) {
	tk := newOpenTicket(t)
	policy := vo.ForwardOnlyPolicy{}

	_, err := tk.ChangeStatus(vo.StatusClosed, policy)
	require.Error(t, err)
	assert.True(t, apperrors.IsBadRequestError(err))
	assert.Equal(t, vo.StatusOpen, tk.Status())

	_, err = tk.ChangeStatus(vo.StatusInProgress, policy)
	require.NoError(t, err)
	_, err = tk.ChangeStatus(vo.StatusResolved, policy)
	require.NoError(t, err)
	_, err = tk.ChangeStatus(vo.StatusClosed, policy)
	require.NoError(t, err)

	_, err = tk.ChangeStatus(vo.StatusOpen, policy)
	assert.Error(t, err)
}

func TestAssignTo(t *testing.T) {
	tk := newOpenTicket(t)

	assert.True(t, tk.AssignTo(strPtr("tech-1")))
	assert.Equal(t, "tech-1", *tk.AssigneeID())
	assert.False(t, tk.AssignTo(strPtr("tech-1")))

	assert.True(t, tk.AssignTo(nil))
	assert.Nil(t, tk.AssigneeID())
	assert.False(t, tk.AssignTo(strPtr("")))
}

func TestSetServiceTags_Dedupes(t *testing.T) {
	tk := newOpenTicket(t)
	tk.SetServiceTags([]string{"a", "b", "a", "", "c"})

	assert.Equal(t, []string{"a", "b", "c"}, tk.ServiceTagIDs())
	assert.True(t, tk.HasServiceTag("b"))
	assert.False(t, tk.HasServiceTag("z"))
}

func TestApprove(t *testing.T) {
	tk := newPendingTicket(t)

	require.NoError(t, tk.Approve("admin-1"))
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Equal(t, "admin-1", *tk.ApprovedBy())
	assert.NotNil(t, tk.ApprovedAt())
	assert.NotNil(t, tk.OpenedAt())

	assert.ErrorIs(t, tk.Approve("admin-1"), ErrNotEligibleForApproval)
}

func TestApprove_NotPending(t *testing.T) {
	tk := newOpenTicket(t)

	err := tk.Approve("admin-1")
	assert.ErrorIs(t, err, ErrNotEligibleForApproval)
	assert.True(t, apperrors.IsBadRequestError(err))
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Nil(t, tk.ApprovedBy())
}

func TestReject(t *testing.T) {
	tk := newPendingTicket(t)

	assert.ErrorIs(t, tk.Reject("admin-1", "  "), ErrRejectionReasonRequired)
	assert.False(t, tk.IsRejected())

	require.NoError(t, tk.Reject("admin-1", "Spam"))
	assert.Equal(t, vo.StatusPendingApproval, tk.Status())
	assert.True(t, tk.IsRejected())
	assert.Equal(t, "Spam", *tk.RejectionReason())
	assert.False(t, tk.IsEligibleForApproval())

	assert.ErrorIs(t, tk.Approve("admin-1"), ErrNotEligibleForApproval)
}

func TestCanBeViewedBy(t *testing.T) {
	tk := newOpenTicket(t)

	assert.True(t, tk.CanBeViewedBy(&permission.Principal{UserID: "x", Role: permission.RoleTechnician}))
	assert.True(t, tk.CanBeViewedBy(&permission.Principal{UserID: "x", Role: permission.RoleClient, ClientID: strPtr("client-1")}))
	assert.False(t, tk.CanBeViewedBy(&permission.Principal{UserID: "x", Role: permission.RoleClient, ClientID: strPtr("client-2")}))
	assert.False(t, tk.CanBeViewedBy(&permission.Principal{UserID: "x", Role: permission.RoleClient}))
	assert.False(t, tk.CanBeViewedBy(nil))
}

func TestReconstructTicket(t *testing.T) {
	_, err := ReconstructTicket(Snapshot{ID: "", Status: vo.StatusOpen, Priority: vo.PriorityLow, Source: vo.SourceWeb})
	assert.Error(t, err)

	tk, err := ReconstructTicket(Snapshot{ID: "TK-000009", Status: vo.StatusClosed, Priority: vo.PriorityLow, Source: vo.SourceWeb})
	require.NoError(t, err)
	assert.Equal(t, "TK-000009", tk.ID())
	assert.NotNil(t, tk.PhotoURLs())
	assert.NotNil(t, tk.ServiceTagIDs())
}

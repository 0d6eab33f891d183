package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

func newApproveUseCase(repo *mockTicketRepository, updates *mockUpdateRepository) *ApproveTicketUseCase {
	clients := newMemClientRepository(newTestClient("client-1", "Acme Co"))
	return NewApproveTicketUseCase(
		repo,
		updates,
		&mockTransactor{},
		permission.NewStaticAuthorizer(),
		newTestAssembler(clients, newMockUserRepository(), newMemTagRepository()),
		logger.NewNop(),
	)
}

func TestApproveTicketUseCase_Approve(t *testing.T) {
	pending := newTestTicket("TK-000010", vo.StatusPendingApproval, "client-1")
	var decided *ticket.Ticket
	repo := &mockTicketRepository{
		GetByIDFunc: func(context.Context, string) (*ticket.Ticket, error) { return pending, nil },
		SaveDecisionFunc: func(_ context.Context, t *ticket.Ticket) (bool, error) {
			decided = t
			return true, nil
		},
	}
	updates := &mockUpdateRepository{}
	uc := newApproveUseCase(repo, updates)

	result, err := uc.Execute(context.Background(), ApproveTicketCommand{
		Caller:   principal(permission.RoleAdmin, "admin-1"),
		TicketID: "TK-000010",
		Approved: true,
	})

	require.NoError(t, err)
	require.NotNil(t, decided)
	assert.Equal(t, vo.StatusOpen.String(), result.Status)
	require.NotNil(t, result.ApprovedBy)
	assert.Equal(t, "admin-1", *result.ApprovedBy)
	assert.NotNil(t, result.ApprovedAt)
	assert.Equal(t, []vo.UpdateKind{vo.UpdateKindStatusChange}, updates.kinds())
}

func TestApproveTicketUseCase_Reject(t *testing.T) {
	pending := newTestTicket("TK-000011", vo.StatusPendingApproval, "client-1")
	repo := &mockTicketRepository{
		GetByIDFunc: func(context.Context, string) (*ticket.Ticket, error) { return pending, nil },
	}
	updates := &mockUpdateRepository{}
	uc := newApproveUseCase(repo, updates)

	result, err := uc.Execute(context.Background(), ApproveTicketCommand{
		Caller:          principal(permission.RoleSuperadmin, "root"),
		TicketID:        "TK-000011",
		Approved:        false,
		RejectionReason: "duplicate of TK-000003",
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusPendingApproval.String(), result.Status)
	require.NotNil(t, result.RejectionReason)
	assert.Equal(t, "duplicate of TK-000003", *result.RejectionReason)
	assert.Nil(t, result.ApprovedBy)
	require.Len(t, updates.created, 1)
	assert.Contains(t, updates.created[0].Message(), "duplicate of TK-000003")
}

func TestApproveTicketUseCase_NotEligible(t *testing.T) {
	tests := []struct {
		name   string
		ticket func() *ticket.Ticket
	}{
		{"open ticket", func() *ticket.Ticket { return newTestTicket("TK-000020", vo.StatusOpen, "client-1") }},
		{"closed ticket", func() *ticket.Ticket { return newTestTicket("TK-000020", vo.StatusClosed, "client-1") }},
		{"already rejected", func() *ticket.Ticket {
			tk := newTestTicket("TK-000020", vo.StatusPendingApproval, "client-1")
			_ = tk.Reject("admin-0", "spam")
			return tk
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := tt.ticket()
			before := tk.Status()
			saveCalled := false
			repo := &mockTicketRepository{
				GetByIDFunc: func(context.Context, string) (*ticket.Ticket, error) { return tk, nil },
				SaveDecisionFunc: func(context.Context, *ticket.Ticket) (bool, error) {
					saveCalled = true
					return true, nil
				},
			}
			uc := newApproveUseCase(repo, &mockUpdateRepository{})

			_, err := uc.Execute(context.Background(), ApproveTicketCommand{
				Caller:   principal(permission.RoleAdmin, "admin-1"),
				TicketID: "TK-000020",
				Approved: true,
			})

			require.Error(t, err)
			assert.True(t, apperrors.IsBadRequestError(err))
			assert.False(t, saveCalled)
			assert.Equal(t, before, tk.Status())
		})
	}
}

func TestApproveTicketUseCase_ConcurrentDecisionLoses(t *testing.T) {
	pending := newTestTicket("TK-000030", vo.StatusPendingApproval, "client-1")
	repo := &mockTicketRepository{
		GetByIDFunc:      func(context.Context, string) (*ticket.Ticket, error) { return pending, nil },
		SaveDecisionFunc: func(context.Context, *ticket.Ticket) (bool, error) { return false, nil },
	}
	updates := &mockUpdateRepository{}
	uc := newApproveUseCase(repo, updates)

	_, err := uc.Execute(context.Background(), ApproveTicketCommand{
		Caller:   principal(permission.RoleAdmin, "admin-1"),
		TicketID: "TK-000030",
		Approved: true,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsBadRequestError(err))
	assert.Empty(t, updates.created)
}

func TestApproveTicketUseCase_RejectionNeedsReason(t *testing.T) {
	pending := newTestTicket("TK-000040", vo.StatusPendingApproval, "client-1")
	repo := &mockTicketRepository{
		GetByIDFunc: func(context.Context, string) (*ticket.Ticket, error) { return pending, nil },
	}
	uc := newApproveUseCase(repo, &mockUpdateRepository{})

	_, err := uc.Execute(context.Background(), ApproveTicketCommand{
		Caller:          principal(permission.RoleAdmin, "admin-1"),
		TicketID:        "TK-000040",
		RejectionReason: "   ",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.False(t, pending.IsRejected())
}

func TestApproveTicketUseCase_ForbiddenForNonAdmins(t *testing.T) {
	for _, role := range []permission.Role{permission.RoleTechnician, permission.RoleClient} {
		t.Run(role.String(), func(t *testing.T) {
			getCalled := false
			repo := &mockTicketRepository{
				GetByIDFunc: func(context.Context, string) (*ticket.Ticket, error) {
					getCalled = true
					return nil, nil
				},
			}
			uc := newApproveUseCase(repo, &mockUpdateRepository{})

			_, err := uc.Execute(context.Background(), ApproveTicketCommand{
				Caller:   principal(role, "u1"),
				TicketID: "TK-000001",
				Approved: true,
			})

			require.Error(t, err)
			assert.True(t, apperrors.IsForbiddenError(err))
			assert.False(t, getCalled)
		})
	}
}

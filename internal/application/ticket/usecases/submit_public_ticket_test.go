package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// memTicketStore backs a mockTicketRepository with a map so several use cases can share state.
type memTicketStore struct {
	mu      sync.Mutex
	tickets map[string]*ticket.Ticket
	links   map[string][]string
}

func newMemTicketStore() (*memTicketStore, *mockTicketRepository) {
	s := &memTicketStore{
		tickets: make(map[string]*ticket.Ticket),
		links:   make(map[string][]string),
	}
	repo := &mockTicketRepository{
		CreateFunc: func(_ context.Context, t *ticket.Ticket) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.tickets[t.ID()] = t
			return nil
		},
		GetByIDFunc: func(_ context.Context, id string) (*ticket.Ticket, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.tickets[id], nil
		},
		ReplaceServiceTagsFunc: func(_ context.Context, ticketID string, tagIDs []string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.links[ticketID] = tagIDs
			return nil
		},
		SaveDecisionFunc: func(_ context.Context, t *ticket.Ticket) (bool, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.tickets[t.ID()] = t
			return true, nil
		},
	}
	return s, repo
}

type intakeFixture struct {
	store   *memTicketStore
	repo    *mockTicketRepository
	updates *mockUpdateRepository
	clients *memClientRepository
	tags    *memTagRepository
	uc      *SubmitPublicTicketUseCase
}

func newIntakeFixture(clients ...*client.Client) *intakeFixture {
	f := &intakeFixture{
		updates: &mockUpdateRepository{},
		clients: newMemClientRepository(clients...),
		tags:    newMemTagRepository(),
	}
	f.store, f.repo = newMemTicketStore()
	f.uc = NewSubmitPublicTicketUseCase(
		f.repo, f.updates, f.clients, f.tags,
		&sequenceIDGenerator{},
		&mockTransactor{},
		DefaultSettings(),
		logger.NewNop(),
	)
	return f
}

func validIntake() SubmitPublicTicketCommand {
	return SubmitPublicTicketCommand{
		Title:           "Printer down",
		Description:     "Nothing prints since this morning",
		CompanyName:     "Acme Co",
		ServiceTagNames: []string{"PR-001"},
		ContactName:     "ann smith",
		ContactEmail:    "a@acme.com",
		ContactPhone:    "555-0101",
		Source:          "web",
	}
}

func TestSubmitPublicTicket_NewClientAndTag(t *testing.T) {
	f := newIntakeFixture()

	result, err := f.uc.Execute(context.Background(), validIntake())

	require.NoError(t, err)
	assert.True(t, result.ClientWasNew)
	assert.Equal(t, "Acme Co", result.CompanyName)
	assert.Equal(t, vo.StatusPendingApproval.String(), result.Status)
	assert.NotEmpty(t, result.Message)
	require.Len(t, result.ServiceTags, 1)
	assert.Equal(t, "PR-001", result.ServiceTags[0].Tag)
	assert.Equal(t, 1, f.clients.creates)
	assert.Equal(t, 1, f.tags.creates)

	saved := f.store.tickets[result.TicketID]
	require.NotNil(t, saved)
	assert.Equal(t, vo.StatusPendingApproval, saved.Status())
	assert.Nil(t, saved.ReporterID())
	assert.Equal(t, []string{result.ServiceTags[0].ID}, f.store.links[result.TicketID])

	created, _ := f.clients.GetByCompanyName(context.Background(), "Acme Co")
	require.NotNil(t, created)
	assert.Equal(t, "Ann Smith", created.ContactName())

	tag, _ := f.tags.GetByID(context.Background(), result.ServiceTags[0].ID)
	assert.Equal(t, "Unknown", tag.HardwareType())
	assert.Equal(t, "Unknown", tag.Location())
}

func TestSubmitPublicTicket_ExistingClientAndTagAreReused(t *testing.T) {
	existing := newTestClient("client-1", "Acme Co")
	f := newIntakeFixture(existing)
	require.NoError(t, f.tags.Create(context.Background(), newTestTag("tag-1", "client-1", "PR-001")))
	f.tags.creates = 0

	cmd := validIntake()
	cmd.ServiceTagNames = []string{"PR-001", " PR-001 ", "PR-002"}
	result, err := f.uc.Execute(context.Background(), cmd)

	require.NoError(t, err)
	assert.False(t, result.ClientWasNew)
	assert.Zero(t, f.clients.creates)
	assert.Equal(t, 1, f.tags.creates, "only PR-002 is new")
	require.Len(t, result.ServiceTags, 2)
	assert.Equal(t, "tag-1", result.ServiceTags[0].ID)
	assert.Equal(t, "PR-002", result.ServiceTags[1].Tag)
}

func TestSubmitPublicTicket_RepeatedSubmissionsDoNotDuplicate(t *testing.T) {
	f := newIntakeFixture()

	first, err := f.uc.Execute(context.Background(), validIntake())
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), validIntake())
	require.NoError(t, err)

	assert.True(t, first.ClientWasNew)
	assert.False(t, second.ClientWasNew)
	assert.Equal(t, 1, f.clients.creates)
	assert.Equal(t, 1, f.tags.creates)
	assert.Equal(t, first.ServiceTags[0].ID, second.ServiceTags[0].ID)
	assert.NotEqual(t, first.TicketID, second.TicketID)
}

func TestSubmitPublicTicket_CompanyMatchIsCaseSensitive(t *testing.T) {
	f := newIntakeFixture(newTestClient("client-1", "Acme Co"))

	cmd := validIntake()
	cmd.CompanyName = "ACME CO"
	result, err := f.uc.Execute(context.Background(), cmd)

	require.NoError(t, err)
	assert.True(t, result.ClientWasNew)
}

func TestSubmitPublicTicket_ValidationHasNoSideEffects(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*SubmitPublicTicketCommand)
		wantFields []string
	}{
		{"missing title", func(c *SubmitPublicTicketCommand) { c.Title = "" }, []string{"title"}},
		{"missing company", func(c *SubmitPublicTicketCommand) { c.CompanyName = "  " }, []string{"company_name"}},
		{"bad email", func(c *SubmitPublicTicketCommand) { c.ContactEmail = "not-an-email" }, []string{"contact_email"}},
		{"no tags", func(c *SubmitPublicTicketCommand) { c.ServiceTagNames = []string{" "} }, []string{"service_tag_names"}},
		{"bad priority", func(c *SubmitPublicTicketCommand) { c.Priority = "urgent" }, []string{"priority"}},
		{"bad source", func(c *SubmitPublicTicketCommand) { c.Source = "fax" }, []string{"source"}},
		{"several fields", func(c *SubmitPublicTicketCommand) {
			c.Description = ""
			c.ContactPhone = ""
		}, []string{"description", "contact_phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newIntakeFixture()
			cmd := validIntake()
			tt.mutate(&cmd)

			result, err := f.uc.Execute(context.Background(), cmd)

			require.Error(t, err)
			assert.Nil(t, result)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			var fields []string
			for _, fe := range appErr.Fields {
				fields = append(fields, fe.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
			assert.Zero(t, f.clients.creates)
			assert.Zero(t, f.tags.creates)
			assert.Empty(t, f.store.tickets)
		})
	}
}

func TestSubmitPublicTicket_PersistenceFailureIsGeneric(t *testing.T) {
	f := newIntakeFixture()
	f.repo.CreateFunc = func(context.Context, *ticket.Ticket) error {
		return errors.New("pq: relation \"tickets\" does not exist")
	}

	_, err := f.uc.Execute(context.Background(), validIntake())

	require.Error(t, err)
	assert.True(t, apperrors.IsInternalError(err))
	assert.NotContains(t, err.Error(), "relation")
}

// Public submission followed by an admin approval.
func TestPublicIntakeThenApproval(t *testing.T) {
	f := newIntakeFixture()

	cmd := validIntake()
	submitted, err := f.uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.True(t, submitted.ClientWasNew)
	assert.Equal(t, "pending_approval", submitted.Status)

	approve := NewApproveTicketUseCase(
		f.repo, f.updates, &mockTransactor{},
		permission.NewStaticAuthorizer(),
		newTestAssembler(f.clients, newMockUserRepository(), f.tags),
		logger.NewNop(),
	)
	approved, err := approve.Execute(context.Background(), ApproveTicketCommand{
		Caller:   principal(permission.RoleAdmin, "admin-1"),
		TicketID: submitted.TicketID,
		Approved: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "open", approved.Status)
	assert.Equal(t, "Acme Co", approved.CompanyName)

	stored := f.store.tickets[submitted.TicketID]
	assert.Equal(t, vo.StatusOpen, stored.Status())
	require.NotNil(t, stored.ApprovedBy())
	assert.Equal(t, "admin-1", *stored.ApprovedBy())

	_, err = approve.Execute(context.Background(), ApproveTicketCommand{
		Caller:   principal(permission.RoleAdmin, "admin-1"),
		TicketID: submitted.TicketID,
		Approved: true,
	})
	assert.True(t, apperrors.IsBadRequestError(err), "a second decision must be refused")
}

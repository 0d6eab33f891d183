package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/id"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

func TestClientRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewClientRepository(gdb, logger.NewNop())
	ctx := context.Background()

	// decomposed e followed by a combining acute accent
	acme := seedClient(t, repo, "Cafe\u0301 Acme")
	seedClient(t, repo, "Beta LLC")

	t.Run("company name lookup is normalized and case-sensitive", func(t *testing.T) {
		found, err := repo.GetByCompanyName(ctx, "  Caf\u00e9 Acme ")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, acme.ID(), found.ID())

		none, err := repo.GetByCompanyName(ctx, "caf\u00e9 acme")
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("duplicate company is rejected by the index", func(t *testing.T) {
		dup, err := client.NewClient("", "Beta LLC", "", "", "")
		require.NoError(t, err)
		require.NoError(t, dup.SetID(id.NewUUID()))
		err = repo.Create(ctx, dup)
		require.Error(t, err)
		assert.True(t, apperrors.IsDuplicateError(err))
	})

	t.Run("update and list", func(t *testing.T) {
		phone := "555-0199"
		require.NoError(t, acme.Update(nil, nil, nil, &phone, nil))
		require.NoError(t, repo.Update(ctx, acme))

		list, total, err := repo.List(ctx, client.ListFilter{BaseFilter: query.NewBaseFilter(), Search: "beta"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Beta LLC", list[0].CompanyName())

		got, err := repo.GetByIDs(ctx, []string{acme.ID()})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "555-0199", got[0].Phone())
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, acme.ID()))
		gone, err := repo.GetByID(ctx, acme.ID())
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestServiceTagRepository(t *testing.T) {
	gdb := setupTestDB(t)
	clients := NewClientRepository(gdb, logger.NewNop())
	repo := NewServiceTagRepository(gdb, logger.NewNop())
	ctx := context.Background()

	acme := seedClient(t, clients, "Acme Co")
	beta := seedClient(t, clients, "Beta LLC")
	seedTag(t, repo, acme.ID(), "PR-001")
	seedTag(t, repo, beta.ID(), "PR-001")

	dup, err := servicetag.NewServiceTag(acme.ID(), "PR-001", "", "", "")
	require.NoError(t, err)
	require.NoError(t, dup.SetID(id.NewUUID()))
	err = repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicateError(err))

	found, err := repo.GetByClientAndTag(ctx, beta.ID(), " PR-001 ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, beta.ID(), found.ClientID())

	list, total, err := repo.List(ctx, servicetag.ListFilter{BaseFilter: query.NewBaseFilter(), ClientID: strPtr(acme.ID())})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, acme.ID(), list[0].ClientID())

	n, err := repo.CountByClient(ctx, beta.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository(t *testing.T) {
	gdb := setupTestDB(t)
	clients := NewClientRepository(gdb, logger.NewNop())
	repo := NewUserRepository(gdb, logger.NewNop())
	ctx := context.Background()

	acme := seedClient(t, clients, "Acme Co")
	admin := seedUser(t, repo, "admin@example.com", permission.RoleAdmin, nil)
	tech := seedUser(t, repo, "tech@example.com", permission.RoleTechnician, nil)
	seedUser(t, repo, "client@example.com", permission.RoleClient, strPtr(acme.ID()))

	byEmail, err := repo.GetByEmail(ctx, "tech@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, tech.ID(), byEmail.ID())

	tech.SetDisabled(true)
	require.NoError(t, repo.Update(ctx, tech))

	staff, total, err := repo.List(ctx, user.ListFilter{
		BaseFilter: query.NewBaseFilter(query.WithSort("email", "asc")),
		Roles:      permission.StaffSet,
		Disabled:   boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, admin.ID(), staff[0].ID())

	n, err := repo.CountByClient(ctx, acme.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.Delete(ctx, admin.ID()))
	gone, err := repo.GetByID(ctx, admin.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCommentRepository_SoftDelete(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	acme := seedClient(t, f.clients, "Acme Co")
	tech := seedUser(t, f.users, "tech@example.com", permission.RoleTechnician, nil)
	require.NoError(t, f.tickets.Create(ctx, newOpenTicket(t, "TK-000001", acme.ID(), tech.ID(), "Laptop")))

	keep, err := ticket.NewComment("TK-000001", tech.Principal(), "first", []string{"https://cdn.example.com/a.png"})
	require.NoError(t, err)
	require.NoError(t, keep.SetID(id.NewUUID()))
	require.NoError(t, f.comments.Create(ctx, keep))

	drop, err := ticket.NewComment("TK-000001", tech.Principal(), "second", nil)
	require.NoError(t, err)
	require.NoError(t, drop.SetID(id.NewUUID()))
	require.NoError(t, f.comments.Create(ctx, drop))

	drop.SoftDelete()
	require.NoError(t, f.comments.SoftDelete(ctx, drop))

	visible, err := f.comments.ListByTicket(ctx, "TK-000001")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "first", visible[0].Content())
	assert.Equal(t, []string{"https://cdn.example.com/a.png"}, visible[0].AttachmentURLs())
	assert.Equal(t, permission.RoleTechnician, visible[0].AuthorRole())

	deleted, err := f.comments.GetByID(ctx, drop.ID())
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.True(t, deleted.IsDeleted())

	purged, err := f.comments.PurgeDeleted(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, purged, "recently deleted comments are kept")

	purged, err = f.comments.PurgeDeleted(ctx, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	deleted, err = f.comments.GetByID(ctx, drop.ID())
	require.NoError(t, err)
	assert.Nil(t, deleted)

	visible, err = f.comments.ListByTicket(ctx, "TK-000001")
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func boolPtr(b bool) *bool { return &b }

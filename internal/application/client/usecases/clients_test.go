package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const acmeID = "5f1d2c3b-2222-4e6f-9a0b-000000000001"

type memClientRepository struct {
	clients map[string]*client.Client
	deleted []string
}

func newMemClientRepository(clients ...*client.Client) *memClientRepository {
	r := &memClientRepository{clients: map[string]*client.Client{}}
	for _, c := range clients {
		r.clients[c.ID()] = c
	}
	return r
}

func (r *memClientRepository) Create(_ context.Context, c *client.Client) error {
	r.clients[c.ID()] = c
	return nil
}

func (r *memClientRepository) GetByID(_ context.Context, id string) (*client.Client, error) {
	return r.clients[id], nil
}

func (r *memClientRepository) GetByCompanyName(_ context.Context, name string) (*client.Client, error) {
	for _, c := range r.clients {
		if c.CompanyName() == name {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memClientRepository) Update(_ context.Context, c *client.Client) error {
	r.clients[c.ID()] = c
	return nil
}

func (r *memClientRepository) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	delete(r.clients, id)
	return nil
}

func (r *memClientRepository) List(context.Context, client.ListFilter) ([]*client.Client, int64, error) {
	out := make([]*client.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *memClientRepository) GetByIDs(context.Context, []string) ([]*client.Client, error) {
	return nil, nil
}

type fixedCount int64

func (n fixedCount) CountByClient(context.Context, string) (int64, error) {
	return int64(n), nil
}

func acme() *client.Client {
	now := biztime.NowUTC()
	c, err := client.ReconstructClient(acmeID, "Ann Acme", "Acme Co", "ops@acme.com", "", "", now, now)
	if err != nil {
		panic(err)
	}
	return c
}

func caller(role permission.Role) *permission.Principal {
	return &permission.Principal{UserID: "u-" + role.String(), Role: role}
}

func TestCreateClientUseCase_AdminOnly(t *testing.T) {
	for _, role := range permission.AllRoles {
		t.Run(role.String(), func(t *testing.T) {
			repo := newMemClientRepository()
			uc := NewCreateClientUseCase(repo, permission.NewStaticAuthorizer(), logger.NewNop())

			result, err := uc.Execute(context.Background(), CreateClientCommand{
				Caller:      caller(role),
				ContactName: "Bea",
				CompanyName: " Beta LLC ",
				Email:       "bea@beta.io",
			})

			if !role.IsAdmin() {
				require.Error(t, err)
				assert.True(t, apperrors.IsForbiddenError(err))
				assert.Empty(t, repo.clients)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Beta LLC", result.CompanyName)
			assert.Len(t, repo.clients, 1)
		})
	}
}

func TestCreateClientUseCase_DuplicateCompany(t *testing.T) {
	repo := newMemClientRepository(acme())
	uc := NewCreateClientUseCase(repo, permission.NewStaticAuthorizer(), logger.NewNop())

	_, err := uc.Execute(context.Background(), CreateClientCommand{Caller: caller(permission.RoleAdmin), CompanyName: "Acme Co"})
	assert.True(t, apperrors.IsBadRequestError(err))

	_, err = uc.Execute(context.Background(), CreateClientCommand{Caller: caller(permission.RoleAdmin), CompanyName: "  "})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestDeleteClientUseCase_RefusesWithDependents(t *testing.T) {
	tests := []struct {
		name                string
		tickets, tags, user fixedCount
		caller              *permission.Principal
		wantErr             func(error) bool
	}{
		{name: "no dependents", caller: caller(permission.RoleAdmin)},
		{name: "has tickets", tickets: 1, caller: caller(permission.RoleAdmin), wantErr: apperrors.IsBadRequestError},
		{name: "has tags", tags: 3, caller: caller(permission.RoleAdmin), wantErr: apperrors.IsBadRequestError},
		{name: "has users", user: 1, caller: caller(permission.RoleSuperadmin), wantErr: apperrors.IsBadRequestError},
		{name: "technician", caller: caller(permission.RoleTechnician), wantErr: apperrors.IsForbiddenError},
		{name: "client", caller: caller(permission.RoleClient), wantErr: apperrors.IsForbiddenError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemClientRepository(acme())
			uc := NewDeleteClientUseCase(repo, tt.tickets, tt.tags, tt.user, permission.NewStaticAuthorizer(), logger.NewNop())

			err := uc.Execute(context.Background(), DeleteClientCommand{Caller: tt.caller, ClientID: acmeID})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				assert.Empty(t, repo.deleted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{acmeID}, repo.deleted)
		})
	}
}

func TestGetClientUseCase_ClientReadsOwnOnly(t *testing.T) {
	repo := newMemClientRepository(acme())
	uc := NewGetClientUseCase(repo, permission.NewStaticAuthorizer(), logger.NewNop())

	own := acmeID
	result, err := uc.Execute(context.Background(), GetClientQuery{
		Caller:   &permission.Principal{UserID: "cu", Role: permission.RoleClient, ClientID: &own},
		ClientID: acmeID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Co", result.CompanyName)

	other := "5f1d2c3b-2222-4e6f-9a0b-000000000002"
	_, err = uc.Execute(context.Background(), GetClientQuery{
		Caller:   &permission.Principal{UserID: "cu", Role: permission.RoleClient, ClientID: &other},
		ClientID: acmeID,
	})
	assert.True(t, apperrors.IsForbiddenError(err))

	_, err = uc.Execute(context.Background(), GetClientQuery{Caller: caller(permission.RoleTechnician), ClientID: acmeID})
	assert.NoError(t, err)
}

func TestUpdateClientUseCase(t *testing.T) {
	target := acme()
	now := biztime.NowUTC()
	other, err := client.ReconstructClient("5f1d2c3b-2222-4e6f-9a0b-000000000002", "", "Beta LLC", "", "", "", now, now)
	require.NoError(t, err)
	repo := newMemClientRepository(target, other)
	uc := NewUpdateClientUseCase(repo, permission.NewStaticAuthorizer(), logger.NewNop())

	phone := "555-0100"
	result, err := uc.Execute(context.Background(), UpdateClientCommand{Caller: caller(permission.RoleAdmin), ClientID: acmeID, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", result.Phone)

	taken := "Beta LLC"
	_, err = uc.Execute(context.Background(), UpdateClientCommand{Caller: caller(permission.RoleAdmin), ClientID: acmeID, CompanyName: &taken})
	assert.True(t, apperrors.IsBadRequestError(err))

	_, err = uc.Execute(context.Background(), UpdateClientCommand{Caller: caller(permission.RoleTechnician), ClientID: acmeID, Phone: &phone})
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestListClientsUseCase_StaffOnly(t *testing.T) {
	uc := NewListClientsUseCase(newMemClientRepository(acme()), permission.NewStaticAuthorizer(), logger.NewNop())

	for _, role := range permission.AllRoles {
		result, err := uc.Execute(context.Background(), ListClientsQuery{Caller: caller(role)})
		if role.IsStaff() {
			require.NoError(t, err)
			assert.Equal(t, int64(1), result.Total)
		} else {
			assert.True(t, apperrors.IsForbiddenError(err))
		}
	}
}

package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const newUserID = "9c0d1e2f-3333-4a4b-8c8d-000000000099"

type createFixture struct {
	users    *memUserRepository
	identity *mockIdentityProvider
	notifier *chanNotifier
	uc       *CreateUserUseCase
}

func newCreateFixture() *createFixture {
	f := &createFixture{
		users:    newMemUserRepository(),
		identity: &mockIdentityProvider{nextID: newUserID},
		notifier: newChanNotifier(),
	}
	clients := &mockClientRepository{clients: map[string]*client.Client{acmeClientID: newAcmeClient()}}
	f.uc = NewCreateUserUseCase(f.users, clients, f.identity, permission.NewStaticAuthorizer(), logger.NewNop())
	f.uc.SetWelcomeNotifier(f.notifier)
	return f
}

func TestCreateUserUseCase_ClientIDRequirement(t *testing.T) {
	clientID := acmeClientID

	tests := []struct {
		name     string
		role     string
		clientID *string
		checkErr func(error) bool
	}{
		{name: "client without client id", role: "client", checkErr: apperrors.IsValidationError},
		{name: "client with blank client id", role: "client", clientID: strPtr("  "), checkErr: apperrors.IsValidationError},
		{name: "client with unknown client", role: "client", clientID: strPtr("5f1d2c3b-2222-4e6f-9a0b-00000000ffff"), checkErr: apperrors.IsNotFoundError},
		{name: "client with client id", role: "client", clientID: &clientID},
		{name: "technician without client id", role: "technician"},
		{name: "admin without client id", role: "admin"},
		{name: "unknown role", role: "owner", checkErr: apperrors.IsValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreateFixture()

			result, err := f.uc.Execute(context.Background(), CreateUserCommand{
				Caller:   principal(permission.RoleAdmin, adminID),
				Email:    "new@acme.com",
				Name:     "New Person",
				Role:     tt.role,
				ClientID: tt.clientID,
				Password: "correct-horse",
			})

			if tt.checkErr != nil {
				require.Error(t, err)
				assert.True(t, tt.checkErr(err), "unexpected error: %v", err)
				assert.Empty(t, f.identity.created, "no identity may be created on validation failure")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, newUserID, result.User.ID)
			assert.Equal(t, tt.role, result.User.Role)
			assert.Empty(t, result.GeneratedPassword)
			assert.True(t, f.users.has(newUserID))
		})
	}
}

func TestCreateUserUseCase_RoleGates(t *testing.T) {
	tests := []struct {
		name    string
		caller  *permission.Principal
		role    string
		wantErr func(error) bool
	}{
		{"technician cannot create", principal(permission.RoleTechnician, techID), "technician", apperrors.IsForbiddenError},
		{"client cannot create", principal(permission.RoleClient, clientUserID), "technician", apperrors.IsForbiddenError},
		{"anonymous", nil, "technician", apperrors.IsUnauthorizedError},
		{"admin cannot create superadmin", principal(permission.RoleAdmin, adminID), "superadmin", apperrors.IsForbiddenError},
		{"superadmin creates superadmin", principal(permission.RoleSuperadmin, superID), "superadmin", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreateFixture()
			_, err := f.uc.Execute(context.Background(), CreateUserCommand{
				Caller: tt.caller, Email: "x@acme.com", Name: "X", Role: tt.role, Password: "long-enough",
			})
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
			assert.Empty(t, f.identity.created)
		})
	}
}

func TestCreateUserUseCase_GeneratesPasswordAndSendsWelcome(t *testing.T) {
	f := newCreateFixture()
	clientID := acmeClientID

	result, err := f.uc.Execute(context.Background(), CreateUserCommand{
		Caller:           principal(permission.RoleAdmin, adminID),
		Email:            "Portal@Acme.com",
		Name:             "Portal User",
		Role:             "client",
		ClientID:         &clientID,
		SendWelcomeEmail: true,
	})

	require.NoError(t, err)
	assert.Len(t, result.GeneratedPassword, 16)
	require.Len(t, f.identity.created, 1)
	assert.Equal(t, result.GeneratedPassword, f.identity.created[0].Password)

	select {
	case n := <-f.notifier.sent:
		assert.Equal(t, "portal@acme.com", n.Email)
		assert.Equal(t, "Acme Co", n.CompanyName)
		assert.Equal(t, "Ann Acme", n.ClientName)
	case <-time.After(time.Second):
		t.Fatal("welcome email was not dispatched")
	}
}

func TestCreateUserUseCase_WelcomeFailureDoesNotFailCreation(t *testing.T) {
	f := newCreateFixture()
	f.notifier.err = errors.New("mail api down")

	_, err := f.uc.Execute(context.Background(), CreateUserCommand{
		Caller: principal(permission.RoleAdmin, adminID), Email: "t@acme.com", Name: "Tech",
		Role: "technician", SendWelcomeEmail: true,
	})

	require.NoError(t, err)
	select {
	case <-f.notifier.sent:
	case <-time.After(time.Second):
		t.Fatal("welcome email was not dispatched")
	}
	assert.True(t, f.users.has(newUserID))
}

func TestCreateUserUseCase_MirrorFailureRollsBackIdentity(t *testing.T) {
	f := newCreateFixture()
	f.users.CreateFunc = func(context.Context, *domainUser.User) error {
		return errors.New("unique violation")
	}

	_, err := f.uc.Execute(context.Background(), CreateUserCommand{
		Caller: principal(permission.RoleAdmin, adminID), Email: "t@acme.com", Name: "Tech",
		Role: "technician", Password: "long-enough",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsInternalError(err))
	assert.Equal(t, []string{newUserID}, f.identity.deleted)
}

func TestCreateUserUseCase_Conflicts(t *testing.T) {
	t.Run("existing mirror row", func(t *testing.T) {
		f := newCreateFixture()
		existing := newTestUser(techID, permission.RoleTechnician, false)
		f.users.users[existing.ID()] = existing

		_, err := f.uc.Execute(context.Background(), CreateUserCommand{
			Caller: principal(permission.RoleAdmin, adminID), Email: existing.Email().String(),
			Name: "Dup", Role: "technician", Password: "long-enough",
		})
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("identity already exists", func(t *testing.T) {
		f := newCreateFixture()
		f.identity.CreateErr = domainUser.ErrIdentityExists

		_, err := f.uc.Execute(context.Background(), CreateUserCommand{
			Caller: principal(permission.RoleAdmin, adminID), Email: "dup@acme.com",
			Name: "Dup", Role: "technician", Password: "long-enough",
		})
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("short password", func(t *testing.T) {
		f := newCreateFixture()
		_, err := f.uc.Execute(context.Background(), CreateUserCommand{
			Caller: principal(permission.RoleAdmin, adminID), Email: "s@acme.com",
			Name: "Short", Role: "technician", Password: "abc",
		})
		assert.True(t, apperrors.IsValidationError(err))
	})
}

// denyAction behaves like the static table except for one action.
type denyAction struct {
	permission.Authorizer
	action permission.Action
}

func (a denyAction) Authorize(role permission.Role, action permission.Action) error {
	if action == a.action {
		return apperrors.NewForbiddenError(permission.DenialMessage(action))
	}
	return a.Authorizer.Authorize(role, action)
}

func TestCreateUserUseCase_WelcomeEmailRequiresSendAccess(t *testing.T) {
	tests := []struct {
		name      string
		sendEmail bool
		wantErr   bool
	}{
		{name: "with welcome email", sendEmail: true, wantErr: true},
		{name: "without welcome email", sendEmail: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreateFixture()
			clients := &mockClientRepository{clients: map[string]*client.Client{acmeClientID: newAcmeClient()}}
			authorizer := denyAction{Authorizer: permission.NewStaticAuthorizer(), action: permission.ActionEmailSendAccess}
			f.uc = NewCreateUserUseCase(f.users, clients, f.identity, authorizer, logger.NewNop())
			f.uc.SetWelcomeNotifier(f.notifier)

			_, err := f.uc.Execute(context.Background(), CreateUserCommand{
				Caller: principal(permission.RoleAdmin, adminID), Email: "t@acme.com", Name: "Tech",
				Role: "technician", Password: "long-enough", SendWelcomeEmail: tt.sendEmail,
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsForbiddenError(err))
				assert.Empty(t, f.identity.created)
				return
			}
			require.NoError(t, err)
			assert.True(t, f.users.has(newUserID))
		})
	}
}

func strPtr(s string) *string {
	return &s
}

package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
)

func mustEmail(t *testing.T, s string) *vo.Email {
	t.Helper()
	e, err := vo.NewEmail(s)
	require.NoError(t, err)
	return e
}

func TestNewUser_ClientIDRules(t *testing.T) {
	clientID := "client-1"

	tests := []struct {
		name         string
		role         permission.Role
		clientID     *string
		wantErr      bool
		wantClientID bool
	}{
		{"client with client id", permission.RoleClient, &clientID, false, true},
		{"client without client id", permission.RoleClient, nil, true, false},
		{"technician without client id", permission.RoleTechnician, nil, false, false},
		{"admin with client id drops it", permission.RoleAdmin, &clientID, false, false},
		{"invalid role", permission.Role("owner"), nil, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(mustEmail(t, "u@example.com"), "Una User", tt.role, tt.clientID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantClientID, u.ClientID() != nil)
		})
	}
}

func TestUser_RenameAndDisable(t *testing.T) {
	u, err := NewUser(mustEmail(t, "t@example.com"), "Tess", permission.RoleTechnician, nil)
	require.NoError(t, err)

	changed, err := u.Rename(" Tess  Tech ")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Tess Tech", u.Name())

	_, err = u.Rename("  ")
	assert.Error(t, err)

	assert.True(t, u.IsAssignable())
	assert.True(t, u.SetDisabled(true))
	assert.False(t, u.SetDisabled(true))
	assert.False(t, u.IsAssignable())
}

func TestUser_IsAssignable_ClientNever(t *testing.T) {
	clientID := "c"
	u, err := NewUser(mustEmail(t, "c@example.com"), "Cli", permission.RoleClient, &clientID)
	require.NoError(t, err)
	assert.False(t, u.IsAssignable())
}

func TestUser_Principal(t *testing.T) {
	u, err := NewUser(mustEmail(t, "a@example.com"), "Ada", permission.RoleAdmin, nil)
	require.NoError(t, err)
	require.NoError(t, u.SetID("u-1"))

	p := u.Principal()
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, permission.RoleAdmin, p.Role)
	assert.Equal(t, "a@example.com", p.Email)
}

package user

import (
	"fmt"
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// User is the relational mirror of an identity-provider account. It shares the
// identity's ID. The role never changes after creation.
type User struct {
	id        string
	email     *vo.Email
	name      string
	role      permission.Role
	clientID  *string
	disabled  bool
	createdAt time.Time
	updatedAt time.Time
}

// NewUser validates the role/client pairing: client users must name a client,
// other roles never carry one.
func NewUser(email *vo.Email, name string, role permission.Role, clientID *string) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	normalized, err := vo.NormalizeName(name)
	if err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	var owned *string
	if role.IsClient() {
		if clientID == nil || *clientID == "" {
			return nil, fmt.Errorf("client_id is required for client users")
		}
		id := *clientID
		owned = &id
	}

	now := biztime.NowUTC()
	return &User{
		email:     email,
		name:      normalized,
		role:      role,
		clientID:  owned,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructUser(
	id string,
	email *vo.Email,
	name string,
	role permission.Role,
	clientID *string,
	disabled bool,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	return &User{
		id:        id,
		email:     email,
		name:      name,
		role:      role,
		clientID:  clientID,
		disabled:  disabled,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Email() *vo.Email {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Role() permission.Role {
	return u.role
}

func (u *User) ClientID() *string {
	return u.clientID
}

func (u *User) IsDisabled() bool {
	return u.disabled
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id string) error {
	if u.id != "" {
		return fmt.Errorf("user ID is already set")
	}
	if id == "" {
		return fmt.Errorf("user ID cannot be empty")
	}
	u.id = id
	return nil
}

func (u *User) Rename(name string) (bool, error) {
	normalized, err := vo.NormalizeName(name)
	if err != nil {
		return false, err
	}
	if normalized == u.name {
		return false, nil
	}
	u.name = normalized
	u.updatedAt = biztime.NowUTC()
	return true, nil
}

func (u *User) SetDisabled(disabled bool) bool {
	if u.disabled == disabled {
		return false
	}
	u.disabled = disabled
	u.updatedAt = biztime.NowUTC()
	return true
}

// IsAssignable reports whether tickets may be assigned to this user.
func (u *User) IsAssignable() bool {
	return u.role.IsStaff() && !u.disabled
}

// Principal converts the user into the request-scoped caller.
func (u *User) Principal() *permission.Principal {
	return &permission.Principal{
		UserID:   u.id,
		Name:     u.name,
		Email:    u.email.String(),
		Role:     u.role,
		ClientID: u.clientID,
	}
}

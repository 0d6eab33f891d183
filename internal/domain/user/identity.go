package user

import (
	"context"
	"errors"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
)

// ErrIdentityExists is returned by CreateIdentity when the email is taken.
var ErrIdentityExists = errors.New("identity already exists")

// ErrInvalidCredentials is returned by Authenticate for unknown emails and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

type NewIdentity struct {
	Email    string
	Password string
	Name     string
	Role     permission.Role
	ClientID *string
}

type IdentityChanges struct {
	Name     *string
	Disabled *bool
}

// IdentityProvider owns credentials and sessions. The relational users table
// mirrors its accounts under the same ID.
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, in NewIdentity) (string, error)
	UpdateIdentity(ctx context.Context, id string, changes IdentityChanges) error
	DeleteIdentity(ctx context.Context, id string) error
	Authenticate(ctx context.Context, email, password string) (string, error)
}

package user

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

// Repository persists the user mirror rows. Getters return (nil, nil) when absent.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	CountByClient(ctx context.Context, clientID string) (int64, error)
}

type ListFilter struct {
	query.BaseFilter
	Roles    []permission.Role
	ClientID *string
	Disabled *bool
	Search   string
}

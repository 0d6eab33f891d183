package servicetag

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/shared/query"
)

// Repository persists service tags. Getters return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, s *ServiceTag) error
	GetByID(ctx context.Context, id string) (*ServiceTag, error)
	GetByClientAndTag(ctx context.Context, clientID, tag string) (*ServiceTag, error)
	GetByIDs(ctx context.Context, ids []string) ([]*ServiceTag, error)
	Update(ctx context.Context, s *ServiceTag) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*ServiceTag, int64, error)
	CountByClient(ctx context.Context, clientID string) (int64, error)
}

type ListFilter struct {
	query.BaseFilter
	ClientID *string
	Search   string
}

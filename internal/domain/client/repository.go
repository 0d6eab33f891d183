package client

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/shared/query"
)

// Repository persists clients. Getters return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	// GetByCompanyName matches the normalized company name exactly.
	GetByCompanyName(ctx context.Context, companyName string) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*Client, int64, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Client, error)
}

type ListFilter struct {
	query.BaseFilter
	Search string
}

package adapters

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/user"
)

// PrincipalResolver turns a token subject into the request principal from
// the current user row, so role changes and disabling apply immediately.
type PrincipalResolver struct {
	userRepo user.Repository
}

func NewPrincipalResolver(userRepo user.Repository) *PrincipalResolver {
	return &PrincipalResolver{userRepo: userRepo}
}

// Resolve returns nil without an error when the user is gone or disabled.
func (r *PrincipalResolver) Resolve(ctx context.Context, userID string) (*permission.Principal, error) {
	u, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if u == nil || u.IsDisabled() {
		return nil, nil
	}
	return u.Principal(), nil
}

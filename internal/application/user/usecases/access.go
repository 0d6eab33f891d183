package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/id"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

func requireCaller(caller *permission.Principal) error {
	if caller == nil || caller.UserID == "" {
		return errors.NewUnauthorizedError("Authentication required")
	}
	return nil
}

func authorize(authorizer permission.Authorizer, caller *permission.Principal, action permission.Action) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	return authorizer.Authorize(caller.Role, action)
}

func loadUser(ctx context.Context, repo user.Repository, log logger.Interface, userID string) (*user.User, error) {
	if !id.IsUUID(userID) {
		return nil, errors.NewValidationError("invalid user ID", userID)
	}
	u, err := repo.GetByID(ctx, userID)
	if err != nil {
		log.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to get user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found", userID)
	}
	return u, nil
}

// guardSuperadminTarget requires a superadmin caller when the target account is a superadmin.
func guardSuperadminTarget(authorizer permission.Authorizer, caller *permission.Principal, target *user.User) error {
	if !target.Role().IsSuperadmin() {
		return nil
	}
	return authorizer.Authorize(caller.Role, permission.ActionUsersManageSuperadmin)
}

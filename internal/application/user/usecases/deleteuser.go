package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type DeleteUserCommand struct {
	Caller *permission.Principal
	UserID string
}

type DeleteUserUseCase struct {
	userRepo    domainUser.Repository
	assignments AssignmentCounter
	identity    domainUser.IdentityProvider
	authorizer  permission.Authorizer
	logger      logger.Interface
}

func NewDeleteUserUseCase(
	userRepo domainUser.Repository,
	assignments AssignmentCounter,
	identity domainUser.IdentityProvider,
	authorizer permission.Authorizer,
	logger logger.Interface,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:    userRepo,
		assignments: assignments,
		identity:    identity,
		authorizer:  authorizer,
		logger:      logger,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionUsersDelete); err != nil {
		return err
	}
	if cmd.UserID == cmd.Caller.UserID {
		return errors.NewBadRequestError("You cannot delete your own account")
	}

	target, err := loadUser(ctx, uc.userRepo, uc.logger, cmd.UserID)
	if err != nil {
		return err
	}
	if err := guardSuperadminTarget(uc.authorizer, cmd.Caller, target); err != nil {
		return err
	}

	assigned, err := uc.assignments.CountByAssignee(ctx, target.ID())
	if err != nil {
		uc.logger.Errorw("failed to count assigned tickets", "user_id", target.ID(), "error", err)
		return errors.NewInternalError("failed to delete user")
	}
	if assigned > 0 {
		return errors.NewBadRequestError(
			"Cannot delete a user with assigned tickets",
			fmt.Sprintf("user has %d assigned ticket(s); reassign them first", assigned),
		)
	}

	// Mirror row first; a failed identity delete restores it.
	if err := uc.userRepo.Delete(ctx, target.ID()); err != nil {
		uc.logger.Errorw("failed to delete user", "user_id", target.ID(), "error", err)
		return errors.NewInternalError("failed to delete user")
	}
	if err := uc.identity.DeleteIdentity(ctx, target.ID()); err != nil {
		uc.logger.Errorw("failed to delete identity", "user_id", target.ID(), "error", err)
		if restoreErr := uc.userRepo.Create(ctx, target); restoreErr != nil {
			uc.logger.Errorw("failed to restore user after identity delete failure",
				"user_id", target.ID(), "error", restoreErr)
		}
		return errors.NewInternalError("failed to delete user")
	}

	uc.logger.Infow("user deleted", "user_id", target.ID(), "deleted_by", cmd.Caller.UserID)
	return nil
}

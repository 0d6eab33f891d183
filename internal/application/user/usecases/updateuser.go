package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// UpdateUserCommand patches a user. The role is immutable and has no field here.
type UpdateUserCommand struct {
	Caller   *permission.Principal
	UserID   string
	Name     *string
	Disabled *bool
}

type UpdateUserUseCase struct {
	userRepo   domainUser.Repository
	identity   domainUser.IdentityProvider
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewUpdateUserUseCase(
	userRepo domainUser.Repository,
	identity domainUser.IdentityProvider,
	authorizer permission.Authorizer,
	logger logger.Interface,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo:   userRepo,
		identity:   identity,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*dto.UserDTO, error) {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionUsersUpdate); err != nil {
		return nil, err
	}

	target, err := loadUser(ctx, uc.userRepo, uc.logger, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := guardSuperadminTarget(uc.authorizer, cmd.Caller, target); err != nil {
		return nil, err
	}

	var changes domainUser.IdentityChanges
	if cmd.Name != nil {
		changed, err := target.Rename(*cmd.Name)
		if err != nil {
			return nil, errors.NewValidationError("invalid name", err.Error())
		}
		if changed {
			name := target.Name()
			changes.Name = &name
		}
	}
	if cmd.Disabled != nil {
		if *cmd.Disabled && target.ID() == cmd.Caller.UserID {
			return nil, errors.NewBadRequestError("You cannot disable your own account")
		}
		if target.SetDisabled(*cmd.Disabled) {
			disabled := *cmd.Disabled
			changes.Disabled = &disabled
		}
	}

	if changes.Name == nil && changes.Disabled == nil {
		return dto.ToUserDTO(target), nil
	}

	if err := uc.identity.UpdateIdentity(ctx, target.ID(), changes); err != nil {
		uc.logger.Errorw("failed to update identity", "user_id", target.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}
	if err := uc.userRepo.Update(ctx, target); err != nil {
		uc.logger.Errorw("failed to update user", "user_id", target.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}

	uc.logger.Infow("user updated", "user_id", target.ID(), "updated_by", cmd.Caller.UserID)
	return dto.ToUserDTO(target), nil
}

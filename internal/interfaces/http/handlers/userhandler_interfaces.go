package handlers

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
)

type listUsersUseCase interface {
	Execute(ctx context.Context, q usecases.ListUsersQuery) (*usecases.ListUsersResult, error)
}

type listStaffUseCase interface {
	Execute(ctx context.Context, caller *permission.Principal) ([]dto.StaffMemberDTO, error)
}

type getUserUseCase interface {
	Execute(ctx context.Context, caller *permission.Principal, userID string) (*dto.UserDTO, error)
}

type createUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateUserCommand) (*usecases.CreateUserResult, error)
}

type updateUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateUserCommand) (*dto.UserDTO, error)
}

type deleteUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeleteUserCommand) error
}

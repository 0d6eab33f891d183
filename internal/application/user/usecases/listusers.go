package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

type ListUsersQuery struct {
	Caller    *permission.Principal
	Roles     []string
	ClientID  string
	Disabled  *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListUsersResult struct {
	Users    []*dto.UserDTO
	Total    int64
	Page     int
	PageSize int
}

type ListUsersUseCase struct {
	userRepo   domainUser.Repository
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewListUsersUseCase(userRepo domainUser.Repository, authorizer permission.Authorizer, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, authorizer: authorizer, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, q ListUsersQuery) (*ListUsersResult, error) {
	if err := authorize(uc.authorizer, q.Caller, permission.ActionUsersList); err != nil {
		return nil, err
	}

	filter := domainUser.ListFilter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(q.Page, q.PageSize),
			query.WithSort(q.SortBy, q.SortOrder),
		),
		Disabled: q.Disabled,
		Search:   q.Search,
	}
	if filter.Page <= 0 {
		filter.Page = constants.DefaultPage
	}
	for _, r := range q.Roles {
		role, err := permission.ParseRole(r)
		if err != nil {
			return nil, errors.NewValidationError("invalid role", r)
		}
		filter.Roles = append(filter.Roles, role)
	}
	if q.ClientID != "" {
		clientID := q.ClientID
		filter.ClientID = &clientID
	}

	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}

	return &ListUsersResult{
		Users:    dto.ToUserDTOs(users),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}

// ListStaffUseCase returns the enabled staff members tickets can be assigned to.
type ListStaffUseCase struct {
	userRepo   domainUser.Repository
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewListStaffUseCase(userRepo domainUser.Repository, authorizer permission.Authorizer, logger logger.Interface) *ListStaffUseCase {
	return &ListStaffUseCase{userRepo: userRepo, authorizer: authorizer, logger: logger}
}

func (uc *ListStaffUseCase) Execute(ctx context.Context, caller *permission.Principal) ([]dto.StaffMemberDTO, error) {
	if err := authorize(uc.authorizer, caller, permission.ActionUsersList); err != nil {
		return nil, err
	}

	enabled := false
	filter := domainUser.ListFilter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(1, constants.MaxPageSize),
			query.WithSort("name", "asc"),
		),
		Roles:    permission.StaffSet,
		Disabled: &enabled,
	}

	users, _, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list staff", "error", err)
		return nil, errors.NewInternalError("failed to list staff")
	}

	out := make([]dto.StaffMemberDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToStaffMemberDTO(u))
	}
	return out, nil
}

type GetMeUseCase struct {
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewGetMeUseCase(userRepo domainUser.Repository, logger logger.Interface) *GetMeUseCase {
	return &GetMeUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetMeUseCase) Execute(ctx context.Context, caller *permission.Principal) (*dto.UserDTO, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	u, err := loadUser(ctx, uc.userRepo, uc.logger, caller.UserID)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

// GetUserUseCase returns a single user to staff.
type GetUserUseCase struct {
	userRepo   domainUser.Repository
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewGetUserUseCase(userRepo domainUser.Repository, authorizer permission.Authorizer, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo, authorizer: authorizer, logger: logger}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, caller *permission.Principal, userID string) (*dto.UserDTO, error) {
	if err := authorize(uc.authorizer, caller, permission.ActionUsersList); err != nil {
		return nil, err
	}
	u, err := loadUser(ctx, uc.userRepo, uc.logger, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

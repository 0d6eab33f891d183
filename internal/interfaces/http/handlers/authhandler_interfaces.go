package handlers

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
)

// Use case interfaces for AuthHandler - enables unit testing with mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*dto.TokenPairDTO, error)
}

type refreshTokenUseCase interface {
	Execute(ctx context.Context, cmd usecases.RefreshTokenCommand) (*dto.TokenPairDTO, error)
}

type getMeUseCase interface {
	Execute(ctx context.Context, caller *permission.Principal) (*dto.UserDTO, error)
}

type initiateOAuthUseCase interface {
	Execute(ctx context.Context) (*usecases.InitiateOAuthLoginResult, error)
}

type handleOAuthCallbackUseCase interface {
	Execute(ctx context.Context, cmd usecases.OAuthCallbackCommand) (*dto.TokenPairDTO, error)
}

package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

// RefreshTokenUseCase rotates both tokens. The account is reloaded so a
// disabled or deleted user cannot keep a session alive.
type RefreshTokenUseCase struct {
	userRepo domainUser.Repository
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewRefreshTokenUseCase(userRepo domainUser.Repository, tokens TokenIssuer, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{userRepo: userRepo, tokens: tokens, logger: logger}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*dto.TokenPairDTO, error) {
	userID, err := uc.tokens.ParseRefresh(cmd.RefreshToken)
	if err != nil {
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to load user for refresh", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to refresh token")
	}
	if u == nil {
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	return issueSession(uc.tokens, uc.logger, u)
}

package usecases

import (
	"context"
	stderrors "errors"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const tokenTypeBearer = "Bearer"

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo domainUser.Repository
	identity domainUser.IdentityProvider
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo domainUser.Repository,
	identity domainUser.IdentityProvider,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		identity: identity,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.TokenPairDTO, error) {
	identityID, err := uc.identity.Authenticate(ctx, cmd.Email, cmd.Password)
	if err != nil {
		if stderrors.Is(err, domainUser.ErrInvalidCredentials) {
			return nil, errors.NewInvalidCredentialsError()
		}
		uc.logger.Errorw("identity provider authentication failed", "error", err)
		return nil, errors.NewInternalError("failed to sign in")
	}

	u, err := uc.userRepo.GetByID(ctx, identityID)
	if err != nil {
		uc.logger.Errorw("failed to load user after authentication", "user_id", identityID, "error", err)
		return nil, errors.NewInternalError("failed to sign in")
	}
	if u == nil {
		// An identity without a mirror row cannot be authorized.
		uc.logger.Warnw("authenticated identity has no user record", "user_id", identityID)
		return nil, errors.NewInvalidCredentialsError()
	}

	return issueSession(uc.tokens, uc.logger, u)
}

func issueSession(tokens TokenIssuer, log logger.Interface, u *domainUser.User) (*dto.TokenPairDTO, error) {
	if u.IsDisabled() {
		return nil, errors.NewAccountDisabledError()
	}

	pair, err := tokens.Generate(u.ID(), u.Role())
	if err != nil {
		log.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to sign in")
	}

	log.Infow("user signed in", "user_id", u.ID(), "role", u.Role())
	return &dto.TokenPairDTO{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    pair.ExpiresIn,
		User:         dto.ToUserDTO(u),
	}, nil
}

package usecases

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const providerGoogle = "google"

type InitiateOAuthLoginResult struct {
	AuthURL string
	State   string
}

type InitiateOAuthLoginUseCase struct {
	client     OAuthClient
	stateStore StateStore
	logger     logger.Interface
}

func NewInitiateOAuthLoginUseCase(client OAuthClient, stateStore StateStore, logger logger.Interface) *InitiateOAuthLoginUseCase {
	return &InitiateOAuthLoginUseCase{client: client, stateStore: stateStore, logger: logger}
}

func (uc *InitiateOAuthLoginUseCase) Execute(ctx context.Context) (*InitiateOAuthLoginResult, error) {
	if uc.client == nil {
		return nil, errors.NewBadRequestError("Google sign-in is not configured")
	}

	state, err := generateState()
	if err != nil {
		uc.logger.Errorw("failed to generate oauth state", "error", err)
		return nil, errors.NewInternalError("failed to start sign-in")
	}

	authURL, codeVerifier, err := uc.client.GetAuthURL(state)
	if err != nil {
		uc.logger.Errorw("failed to build auth url", "error", err)
		return nil, errors.NewInternalError("failed to start sign-in")
	}

	if err := uc.stateStore.Set(ctx, state, codeVerifier); err != nil {
		uc.logger.Errorw("failed to store oauth state", "error", err)
		return nil, errors.NewInternalError("failed to start sign-in")
	}

	return &InitiateOAuthLoginResult{AuthURL: authURL, State: state}, nil
}

type OAuthCallbackCommand struct {
	Code  string
	State string
}

// HandleOAuthCallbackUseCase signs in an existing, enabled user whose verified
// provider email matches. It never creates accounts.
type HandleOAuthCallbackUseCase struct {
	client     OAuthClient
	stateStore StateStore
	userRepo   domainUser.Repository
	tokens     TokenIssuer
	logger     logger.Interface
}

func NewHandleOAuthCallbackUseCase(
	client OAuthClient,
	stateStore StateStore,
	userRepo domainUser.Repository,
	tokens TokenIssuer,
	logger logger.Interface,
) *HandleOAuthCallbackUseCase {
	return &HandleOAuthCallbackUseCase{
		client:     client,
		stateStore: stateStore,
		userRepo:   userRepo,
		tokens:     tokens,
		logger:     logger,
	}
}

func (uc *HandleOAuthCallbackUseCase) Execute(ctx context.Context, cmd OAuthCallbackCommand) (*dto.TokenPairDTO, error) {
	if uc.client == nil {
		return nil, errors.NewBadRequestError("Google sign-in is not configured")
	}
	if cmd.Code == "" || cmd.State == "" {
		return nil, errors.NewValidationError("code and state are required")
	}

	codeVerifier, err := uc.stateStore.VerifyAndGet(ctx, cmd.State)
	if err != nil {
		uc.logger.Warnw("invalid or expired oauth state", "error", err)
		return nil, errors.NewOAuthError(providerGoogle, "state", "invalid or expired state parameter")
	}

	accessToken, err := uc.client.ExchangeCode(ctx, cmd.Code, codeVerifier)
	if err != nil {
		uc.logger.Warnw("oauth code exchange failed", "error", err)
		return nil, errors.NewOAuthError(providerGoogle, "exchange")
	}

	info, err := uc.client.GetUserInfo(ctx, accessToken)
	if err != nil {
		uc.logger.Warnw("failed to fetch oauth user info", "error", err)
		return nil, errors.NewOAuthError(providerGoogle, "userinfo")
	}
	if !info.EmailVerified {
		return nil, errors.NewOAuthError(providerGoogle, "userinfo", "email address is not verified")
	}

	u, err := uc.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		uc.logger.Errorw("failed to look up oauth user", "error", err)
		return nil, errors.NewInternalError("failed to sign in")
	}
	if u == nil {
		uc.logger.Infow("oauth sign-in for unknown email refused", "email", info.Email)
		return nil, errors.NewForbiddenError("No account exists for this email address")
	}

	return issueSession(uc.tokens, uc.logger, u)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenIssuer signs session tokens. ParseRefresh returns the subject of a valid
// refresh token so the caller can re-check the account before rotating.
type TokenIssuer interface {
	Generate(userID string, role permission.Role) (*TokenPair, error)
	ParseRefresh(refreshToken string) (userID string, err error)
}

type OAuthUserInfo struct {
	Email         string
	Name          string
	EmailVerified bool
	ProviderID    string
}

type OAuthClient interface {
	GetAuthURL(state string) (authURL string, codeVerifier string, err error)
	ExchangeCode(ctx context.Context, code, codeVerifier string) (accessToken string, err error)
	GetUserInfo(ctx context.Context, accessToken string) (*OAuthUserInfo, error)
}

// StateStore keeps the OAuth state and PKCE verifier between the redirect and the callback.
type StateStore interface {
	Set(ctx context.Context, state, codeVerifier string) error
	// VerifyAndGet consumes the state; a second call for the same state fails.
	VerifyAndGet(ctx context.Context, state string) (codeVerifier string, err error)
}

// AssignmentCounter reports how many tickets are assigned to a user.
type AssignmentCounter interface {
	CountByAssignee(ctx context.Context, userID string) (int64, error)
}

type WelcomeNotification struct {
	Email       string
	Password    string
	CompanyName string
	ClientName  string
}

type WelcomeNotifier interface {
	NotifyWelcome(ctx context.Context, n WelcomeNotification) error
}

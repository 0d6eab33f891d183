package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/auth"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// AccessTokenVerifier validates access tokens only; refresh tokens are rejected.
type AccessTokenVerifier interface {
	VerifyAccess(token string) (*auth.Claims, error)
}

// PrincipalResolver loads the caller behind a token subject. A nil principal
// means the account is gone or disabled.
type PrincipalResolver interface {
	Resolve(ctx context.Context, userID string) (*permission.Principal, error)
}

type AuthMiddleware struct {
	verifier AccessTokenVerifier
	resolver PrincipalResolver
	logger   logger.Interface
}

func NewAuthMiddleware(verifier AccessTokenVerifier, resolver PrincipalResolver, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		resolver: resolver,
		logger:   logger,
	}
}

// RequireAuth resolves the caller once and stores it in the request context.
// The role comes from the user row, never from the token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, errors.NewUnauthorizedError("missing authorization token"))
			return
		}

		claims, err := m.verifier.VerifyAccess(token)
		if err != nil {
			m.logger.Debugw("failed to verify token", "error", err)
			abortWithError(c, errors.NewUnauthorizedError("invalid or expired token"))
			return
		}

		principal, err := m.resolver.Resolve(c.Request.Context(), claims.UserID)
		if err != nil {
			m.logger.Errorw("failed to resolve caller", "user_id", claims.UserID, "error", err)
			abortWithError(c, errors.NewInternalError("failed to resolve caller"))
			return
		}
		if principal == nil {
			abortWithError(c, errors.NewUnauthorizedError("account not found or disabled"))
			return
		}

		c.Set(constants.ContextKeyUserID, principal.UserID)
		c.Set(constants.ContextKeyPrincipal, principal)
		c.Request = c.Request.WithContext(permission.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func abortWithError(c *gin.Context, err error) {
	utils.ErrorResponseWithError(c, err)
	c.Abort()
}

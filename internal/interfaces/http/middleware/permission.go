package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// PermissionMiddleware rejects a route before its handler runs. Use cases
// still authorize on their own.
type PermissionMiddleware struct {
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewPermissionMiddleware(authorizer permission.Authorizer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		authorizer: authorizer,
		logger:     logger,
	}
}

// RequireAction must run after RequireAuth.
func (m *PermissionMiddleware) RequireAction(action permission.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := permission.PrincipalFromContext(c.Request.Context())
		if !ok {
			abortWithError(c, errors.NewUnauthorizedError("user not authenticated"))
			return
		}

		if err := m.authorizer.Authorize(principal.Role, action); err != nil {
			m.logger.Warnw("permission denied",
				"user_id", principal.UserID,
				"role", principal.Role,
				"action", action)
			abortWithError(c, err)
			return
		}

		c.Next()
	}
}

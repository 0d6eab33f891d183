package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupUserRoutes registers user management. Use cases re-check every
// action; the route guards only reject early.
func SetupUserRoutes(api *gin.RouterGroup, config *UserRouteConfig) {
	users := api.Group("/users")
	users.Use(config.AuthMiddleware.RequireAuth())
	{
		users.GET("",
			config.PermissionMiddleware.RequireAction(permission.ActionUsersList),
			config.UserHandler.ListUsers)
		users.POST("",
			config.PermissionMiddleware.RequireAction(permission.ActionUsersCreate),
			config.UserHandler.CreateUser)

		// Must come BEFORE /:id
		users.GET("/staff", config.UserHandler.ListStaff)

		users.GET("/:id", config.UserHandler.GetUser)
		users.PATCH("/:id",
			config.PermissionMiddleware.RequireAction(permission.ActionUsersUpdate),
			config.UserHandler.UpdateUser)
		users.DELETE("/:id",
			config.PermissionMiddleware.RequireAction(permission.ActionUsersDelete),
			config.UserHandler.DeleteUser)
	}
}

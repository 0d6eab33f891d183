package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	// LoginLimit guards the credential endpoints. May be nil.
	LoginLimit gin.HandlerFunc
}

func SetupAuthRoutes(api *gin.RouterGroup, config *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", withOptional(config.LoginLimit, config.AuthHandler.Login)...)
		auth.POST("/refresh", withOptional(config.LoginLimit, config.AuthHandler.RefreshToken)...)

		auth.GET("/oauth/google", config.AuthHandler.InitiateOAuth)
		auth.GET("/oauth/google/callback", config.AuthHandler.HandleOAuthCallback)

		auth.GET("/me", config.AuthMiddleware.RequireAuth(), config.AuthHandler.GetCurrentUser)
	}
}

func withOptional(mw gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	if mw == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{mw, h}
}

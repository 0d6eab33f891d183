package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	clienthandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/client"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

type ClientRouteConfig struct {
	ClientHandler        *clienthandlers.ClientHandler
	ServiceTagHandler    *clienthandlers.ServiceTagHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupClientRoutes(api *gin.RouterGroup, config *ClientRouteConfig) {
	require := config.PermissionMiddleware.RequireAction

	clients := api.Group("/clients")
	clients.Use(config.AuthMiddleware.RequireAuth())
	{
		clients.GET("", require(permission.ActionClientsList), config.ClientHandler.ListClients)
		clients.POST("", require(permission.ActionClientsCreate), config.ClientHandler.CreateClient)
		// Client-role callers may read their own client; GetClient decides.
		clients.GET("/:id", config.ClientHandler.GetClient)
		clients.PATCH("/:id", require(permission.ActionClientsUpdate), config.ClientHandler.UpdateClient)
		clients.DELETE("/:id", require(permission.ActionClientsDelete), config.ClientHandler.DeleteClient)
	}

	tags := api.Group("/service-tags")
	tags.Use(config.AuthMiddleware.RequireAuth())
	{
		tags.GET("", require(permission.ActionServiceTagsList), config.ServiceTagHandler.ListServiceTags)
		tags.POST("", require(permission.ActionServiceTagsCreate), config.ServiceTagHandler.CreateServiceTag)
		tags.PATCH("/:id", require(permission.ActionServiceTagsUpdate), config.ServiceTagHandler.UpdateServiceTag)
		tags.DELETE("/:id", require(permission.ActionServiceTagsDelete), config.ServiceTagHandler.DeleteServiceTag)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	tickethandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	CommentHandler       *tickethandlers.CommentHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		tickets.POST("",
			config.PermissionMiddleware.RequireAction(permission.ActionTicketsCreate),
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.PermissionMiddleware.RequireAction(permission.ActionTicketsList),
			config.TicketHandler.ListTickets)
		tickets.GET("/mine",
			config.TicketHandler.ListMyTickets)
		tickets.GET("/pending",
			config.PermissionMiddleware.RequireAction(permission.ActionTicketsListPending),
			config.TicketHandler.ListPendingTickets)

		// Specific action endpoints
		tickets.POST("/:id/approve",
			config.PermissionMiddleware.RequireAction(permission.ActionTicketsApprove),
			config.TicketHandler.ApproveTicket)
		tickets.GET("/:id/updates",
			config.TicketHandler.ListUpdates)
		tickets.GET("/:id/comments",
			config.CommentHandler.ListComments)
		tickets.POST("/:id/comments",
			config.CommentHandler.AddComment)
		tickets.PUT("/:id/service-tags/:tag_id",
			config.PermissionMiddleware.RequireAction(permission.ActionTicketsUpdate),
			config.TicketHandler.AttachServiceTag)
		tickets.DELETE("/:id/service-tags/:tag_id",
			config.PermissionMiddleware.RequireAction(permission.ActionTicketsUpdate),
			config.TicketHandler.DetachServiceTag)

		// Generic parameterized routes (must come LAST)
		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
		tickets.PATCH("/:id",
			config.PermissionMiddleware.RequireAction(permission.ActionTicketsUpdate),
			config.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			config.PermissionMiddleware.RequireAction(permission.ActionTicketsDelete),
			config.TicketHandler.DeleteTicket)
	}

	// Authors may delete their own comments, so the use case decides.
	comments := api.Group("/comments")
	comments.Use(config.AuthMiddleware.RequireAuth())
	{
		comments.DELETE("/:id", config.CommentHandler.DeleteComment)
	}
}

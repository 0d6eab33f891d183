package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	tickethandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/ticket"
)

// PublicRouteConfig covers the unauthenticated surface: the web-form intake
// and the service-to-service access email endpoint. The intake path must be
// listed in the engine's open CORS prefixes.
type PublicRouteConfig struct {
	PublicTicketHandler *tickethandlers.PublicTicketHandler
	EmailAccessHandler  *handlers.EmailAccessHandler
	IntakeLimit         gin.HandlerFunc
	EmailLimit          gin.HandlerFunc
	InternalToken       gin.HandlerFunc
}

// PublicTicketsPath is the intake path below the API prefix.
const PublicTicketsPath = "/public-tickets"

func SetupPublicRoutes(api *gin.RouterGroup, config *PublicRouteConfig) {
	intake := api.Group(PublicTicketsPath)
	{
		intake.OPTIONS("", config.PublicTicketHandler.Preflight)
		intake.POST("", withOptional(config.IntakeLimit, config.PublicTicketHandler.Submit)...)
		intake.GET("", config.PublicTicketHandler.MethodNotAllowed)
		intake.PUT("", config.PublicTicketHandler.MethodNotAllowed)
		intake.PATCH("", config.PublicTicketHandler.MethodNotAllowed)
		intake.DELETE("", config.PublicTicketHandler.MethodNotAllowed)
	}

	email := api.Group("/email-access")
	email.Use(config.InternalToken)
	{
		email.POST("", withOptional(config.EmailLimit, config.EmailAccessHandler.Send)...)
	}
}

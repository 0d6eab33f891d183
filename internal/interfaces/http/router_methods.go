package http

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/routes"

	_ "github.com/orris-inc/helpdesk/docs"
)

const (
	loginRateLimitPerMinute = 20
	apiPrefix               = "/api"
)

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	cfg := r.cfg

	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.SecurityHeaders())
	// Intake submissions may come from any origin.
	r.engine.Use(middleware.CORSWithOpenPaths(cfg.Server.AllowedOrigins, apiPrefix+routes.PublicTicketsPath))

	r.engine.GET("/health", r.hdlrs.userHandler.HealthCheck)

	if cfg.Server.IsDebug() {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if r.attachmentDir != "" {
		r.engine.Static(attachmentsRoute, r.attachmentDir)
	}

	api := r.engine.Group(apiPrefix)

	routes.SetupPublicRoutes(api, &routes.PublicRouteConfig{
		PublicTicketHandler: r.hdlrs.publicTicketHandler,
		EmailAccessHandler:  r.hdlrs.emailAccessHandler,
		IntakeLimit:         middleware.RateLimit(r.limiter, "public_intake", cfg.PublicIntake.RateLimitPerMinute, r.log),
		EmailLimit:          middleware.RateLimit(r.limiter, "email_access", cfg.Internal.EmailRateLimitPerMinute, r.log),
		InternalToken:       middleware.RequireInternalToken(cfg.Internal.ServiceToken),
	})

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    r.hdlrs.authHandler,
		AuthMiddleware: r.authMiddleware,
		LoginLimit:     middleware.RateLimit(r.limiter, "auth", loginRateLimitPerMinute, r.log),
	})
	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:          r.hdlrs.userHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupClientRoutes(api, &routes.ClientRouteConfig{
		ClientHandler:        r.hdlrs.clientHandler,
		ServiceTagHandler:    r.hdlrs.serviceTagHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        r.hdlrs.ticketHandler,
		CommentHandler:       r.hdlrs.commentHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

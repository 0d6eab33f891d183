package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/infrastructure/adapters"
	"github.com/orris-inc/helpdesk/internal/infrastructure/auth"
	"github.com/orris-inc/helpdesk/internal/infrastructure/config"
	"github.com/orris-inc/helpdesk/internal/infrastructure/identity"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers, and wires them together. Shutdown releases what it opened.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	limiter              middleware.Limiter

	// attachmentDir is served at /uploads when attachments are kept on disk.
	attachmentDir string
}

// NewContainer builds every component from the loaded configuration.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.init(); err != nil {
		c.Shutdown(context.Background())
		return nil, err
	}
	return c, nil
}

func (c *Container) init() error {
	cfg := c.cfg
	log := c.log

	// Section 1: Infrastructure
	redisClient, err := initRedis(cfg, log)
	if err != nil {
		return err
	}
	c.redis = redisClient
	c.limiter = newRateLimiter(redisClient)
	c.repos = newRepositories(c.db, log)

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	authorizer, err := newAuthorizer(c.db, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize permissions: %w", err)
	}

	attachments, attachmentDir, err := newAttachmentStorage(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize attachment storage: %w", err)
	}
	c.attachmentDir = attachmentDir

	mailer, err := newMailer(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}

	settings, err := ticketSettings(cfg)
	if err != nil {
		return err
	}

	// Section 2: Use cases
	c.ucs = newUseCases(useCaseDeps{
		repos:       c.repos,
		identity:    identity.NewLocalProvider(c.db, hasher, log),
		tokens:      jwtSvc,
		oauthClient: newOAuthClient(cfg),
		stateStore:  newStateStore(redisClient),
		authorizer:  authorizer,
		mailer:      mailer,
		storage:     attachments,
		settings:    settings,
		loginURL:    cfg.Email.LoginURL,
		passwordLen: cfg.Auth.Password.GeneratedLength,
	}, log)

	// Section 3: Handlers and middlewares
	c.hdlrs = newHandlers(c.ucs, cfg.Server.FrontendURL, log)
	c.authMiddleware = middleware.NewAuthMiddleware(jwtSvc, adapters.NewPrincipalResolver(c.repos.userRepo), log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(authorizer, log)

	return nil
}

// Engine returns the gin engine the routes are registered on.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown closes the Redis client. The database is owned by the caller.
func (c *Container) Shutdown(_ context.Context) {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
		c.redis = nil
	}
}

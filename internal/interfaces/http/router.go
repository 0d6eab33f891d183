package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/infrastructure/config"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// Router represents the HTTP router configuration.
type Router struct {
	*Container
}

// NewRouter creates the router with every dependency wired.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Shutdown releases the router's infrastructure.
func (r *Router) Shutdown(ctx context.Context) {
	r.Container.Shutdown(ctx)
}

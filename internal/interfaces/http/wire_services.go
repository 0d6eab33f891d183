package http

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	notificationUsecases "github.com/orris-inc/helpdesk/internal/application/notification/usecases"
	ticketUsecases "github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	userUsecases "github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/auth"
	"github.com/orris-inc/helpdesk/internal/infrastructure/cache"
	"github.com/orris-inc/helpdesk/internal/infrastructure/config"
	"github.com/orris-inc/helpdesk/internal/infrastructure/email"
	infraPermission "github.com/orris-inc/helpdesk/internal/infrastructure/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/ratelimit"
	"github.com/orris-inc/helpdesk/internal/infrastructure/storage"
	"github.com/orris-inc/helpdesk/internal/infrastructure/template"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const (
	oauthStateTTL    = 10 * time.Minute
	redisKeyPrefix   = "helpdesk:"
	attachmentsRoute = "/uploads"
)

// initRedis connects to Redis when configured. A nil client selects the
// in-process state store and rate limiter.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	if !cfg.Redis.Enabled() {
		log.Infow("redis not configured, using in-memory OAuth state and rate limiting")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	return client, nil
}

func newStateStore(client *redis.Client) userUsecases.StateStore {
	if client == nil {
		return cache.NewMemoryStateStore(oauthStateTTL)
	}
	return cache.NewRedisStateStore(client, redisKeyPrefix+"oauth_state:", oauthStateTTL)
}

func newRateLimiter(client *redis.Client) middleware.Limiter {
	if client == nil {
		return ratelimit.NewMemoryRateLimiter()
	}
	return ratelimit.NewRedisRateLimiter(client, redisKeyPrefix+"ratelimit:")
}

// newAuthorizer seeds the casbin enforcer from the rule table. With
// casbin_persist the policies live in the casbin_rule table so they can be
// inspected; the rule table still wins on every start.
func newAuthorizer(db *gorm.DB, cfg *config.Config, log logger.Interface) (permission.Authorizer, error) {
	var policyDB *gorm.DB
	if cfg.Auth.CasbinPersist {
		policyDB = db
	}

	enforcer, err := infraPermission.NewEnforcer(policyDB, log)
	if err != nil {
		return nil, err
	}
	if err := enforcer.SyncRules(permission.Rules()); err != nil {
		return nil, fmt.Errorf("failed to sync permission rules: %w", err)
	}
	return permission.NewEnforcerAuthorizer(enforcer), nil
}

// newAttachmentStorage returns MinIO when an endpoint is configured, or a
// directory served by this process otherwise. localRoot is empty for MinIO.
func newAttachmentStorage(cfg *config.Config, log logger.Interface) (ticketUsecases.AttachmentStorage, string, error) {
	if cfg.Storage.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s, err := storage.NewMinioStorage(ctx, storage.MinioConfig{
			Endpoint:      cfg.Storage.Endpoint,
			AccessKey:     cfg.Storage.AccessKey,
			SecretKey:     cfg.Storage.SecretKey,
			Bucket:        cfg.Storage.Bucket,
			UseSSL:        cfg.Storage.UseSSL,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		}, log)
		if err != nil {
			return nil, "", err
		}
		return s, "", nil
	}

	prefix := strings.TrimRight(cfg.Server.BaseURL, "/") + attachmentsRoute
	s, err := storage.NewLocalStorage(cfg.Storage.LocalDir, prefix)
	if err != nil {
		return nil, "", err
	}
	log.Infow("object storage not configured, storing attachments on disk", "dir", s.Root())
	return s, s.Root(), nil
}

// newMailer returns a nil interface when SMTP is not configured.
func newMailer(cfg *config.Config, log logger.Interface) (notificationUsecases.AccessMailer, error) {
	if !cfg.Email.Enabled() {
		log.Infow("SMTP not configured, access emails are disabled")
		return nil, nil
	}

	templates, err := template.NewEmailTemplates(cfg.Email.TemplatesDir, log)
	if err != nil {
		return nil, err
	}
	return email.NewSMTPMailer(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	}, templates, log), nil
}

func newOAuthClient(cfg *config.Config) userUsecases.OAuthClient {
	if !cfg.OAuth.Google.Enabled() {
		return nil
	}
	return auth.NewGoogleOAuthClient(auth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.Google.ClientID,
		ClientSecret: cfg.OAuth.Google.ClientSecret,
		RedirectURL:  cfg.OAuth.Google.RedirectURL,
	})
}

func ticketSettings(cfg *config.Config) (ticketUsecases.Settings, error) {
	settings := ticketUsecases.DefaultSettings()
	settings.Policy = vo.NewTransitionPolicy(cfg.Tickets.EnforceForwardTransitions)

	if cfg.Tickets.DefaultPriority != "" {
		p, err := vo.NewPriority(cfg.Tickets.DefaultPriority)
		if err != nil {
			return settings, fmt.Errorf("invalid tickets.default_priority: %w", err)
		}
		settings.DefaultPriority = p
	}
	if v := strings.TrimSpace(cfg.Tickets.PlaceholderHardwareType); v != "" {
		settings.PlaceholderHardwareType = v
	}
	if v := strings.TrimSpace(cfg.Tickets.PlaceholderLocation); v != "" {
		settings.PlaceholderLocation = v
	}
	if cfg.Storage.MaxFileSizeMB > 0 {
		settings.MaxAttachmentBytes = int64(cfg.Storage.MaxFileSizeMB) << 20
	}
	return settings, nil
}

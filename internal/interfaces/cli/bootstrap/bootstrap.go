// Package bootstrap loads the configuration, logger and database shared by
// every sub-command.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/infrastructure/config"
	"github.com/orris-inc/helpdesk/internal/infrastructure/database"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// Options are the flags every command accepts.
type Options struct {
	Env        string
	ConfigPath string
}

// BindFlags registers --env and --config as persistent flags on cmd.
func (o *Options) BindFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.Env, "env", "e", "", "Gin mode override (debug, release, test)")
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
}

// Runtime is what a command needs once the process is initialized.
type Runtime struct {
	Config *config.Config
	Log    logger.Interface
	DB     *gorm.DB
}

// Init loads the configuration and logger. The database is opened only when withDB is set.
func Init(opts Options, withDB bool) (*Runtime, error) {
	env := opts.Env
	if envVar := os.Getenv("ENV"); env == "" && envVar != "" {
		env = mapEnvToGinMode(envVar)
	}

	cfg, err := config.Load(env, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize business timezone
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	rt := &Runtime{Config: cfg, Log: logger.NewLogger()}
	if !withDB {
		return rt, nil
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	rt.DB = database.Get()
	return rt, nil
}

// Close releases the database connection if one was opened.
func (r *Runtime) Close() {
	if r.DB == nil {
		return
	}
	if err := database.Close(); err != nil {
		r.Log.Warnw("failed to close database", "error", err)
	}
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

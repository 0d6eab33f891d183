package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/orris-inc/helpdesk/internal/infrastructure/migration"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/orris-inc/helpdesk/internal/interfaces/http"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const shutdownTimeout = 30 * time.Second

var (
	opts               bootstrap.Options
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the helpdesk HTTP API with the given configuration.`,
		RunE:  run,
	}

	opts.BindFlags(cmd)
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending migrations on startup (overrides database.auto_migrate)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Init(opts, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := rt.Config
	log := rt.Log

	log.Infow("starting server",
		"mode", cfg.Server.Mode,
		"database", cfg.Database.Driver)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := handleMigrations(cmd.Context(), rt); err != nil {
		logger.Fatal("migration handling failed", "error", err)
	}

	router, err := httpRouter.NewRouter(rt.DB, cfg, log)
	if err != nil {
		logger.Fatal("failed to build router", "error", err)
	}
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}
	router.Shutdown(ctx)

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(ctx context.Context, rt *bootstrap.Runtime) error {
	if skipMigrationCheck {
		rt.Log.Infow("skipping migration check")
		return nil
	}

	mgr, err := migration.NewManager(rt.DB, rt.Config.Database.Driver, rt.Log)
	if err != nil {
		return err
	}

	if autoMigrate || rt.Config.Database.AutoMigrate {
		if rt.Config.Server.Mode == gin.ReleaseMode {
			rt.Log.Warnw("auto-migration is enabled in release mode")
		}
		if err := mgr.Up(ctx); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	version, err := mgr.Version(ctx)
	if err != nil {
		rt.Log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	rt.Log.Infow("current migration version", "version", version)
	return nil
}

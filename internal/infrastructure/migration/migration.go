// Package migration applies the versioned SQL schema with goose. The scripts
// are embedded so the binary can migrate without a checkout next to it.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const scriptsDir = "scripts"

// SourceDir is where `migrate create` writes new scripts, relative to the repo root.
const SourceDir = "internal/infrastructure/migration/scripts"

//go:embed scripts/*.sql
var scripts embed.FS

// goose keeps dialect, base FS and logger as package globals.
var gooseMu sync.Mutex

// Manager runs goose against an open connection.
type Manager struct {
	db      *sql.DB
	dialect string
	logger  logger.Interface
}

// NewManager prepares a manager for the given driver (mysql, postgres or sqlite).
func NewManager(gdb *gorm.DB, driver string, log logger.Interface) (*Manager, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	dialect, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &Manager{
		db:      sqlDB,
		dialect: dialect,
		logger:  log.Named("migration"),
	}, nil
}

func dialectFor(driver string) (string, error) {
	switch driver {
	case config.DriverMySQL:
		return "mysql", nil
	case config.DriverPostgres:
		return "postgres", nil
	case config.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver for migrations: %q", driver)
	}
}

func (m *Manager) prepare() error {
	goose.SetBaseFS(scripts)
	goose.SetLogger(&gooseLogger{log: m.logger})
	if err := goose.SetDialect(m.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// Up applies every pending migration.
func (m *Manager) Up(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.prepare(); err != nil {
		return err
	}

	from, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		m.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.UpContext(ctx, m.db, scriptsDir); err != nil {
		m.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	to, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	m.logger.Infow("migration completed",
		"dialect", m.dialect,
		"from_version", from,
		"to_version", to)
	return nil
}

// Down rolls back the given number of migrations, one at a time.
func (m *Manager) Down(ctx context.Context, steps int) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if steps <= 0 {
		steps = 1
	}
	if err := m.prepare(); err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.DownContext(ctx, m.db, scriptsDir); err != nil {
			m.logger.Errorw("down migration failed", "step", i+1, "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	m.logger.Infow("down migration completed", "steps", steps)
	return nil
}

// Status prints applied and pending migrations through the logger.
func (m *Manager) Status(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.prepare(); err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, m.db, scriptsDir); err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	return nil
}

func (m *Manager) Version(ctx context.Context) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.prepare(); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

// Create writes a new timestamped SQL script into dir on disk.
func Create(dir, name string, log logger.Interface) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("migration name is required")
	}

	goose.SetBaseFS(nil)
	defer goose.SetBaseFS(scripts)

	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	log.Infow("migration created", "dir", dir, "name", name)
	return nil
}

type gooseLogger struct {
	log logger.Interface
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infow(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf must not exit the process; goose reports the same failure as an error.
func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Errorw(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orris-inc/helpdesk/internal/infrastructure/migration"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/bootstrap"
)

var (
	opts  bootstrap.Options
	name  string
	dir   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	opts.BindFlags(cmd)

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new timestamped SQL migration file. Run from the repository root.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&dir, "dir", migration.SourceDir, "Directory the migration file is written to")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newManager() (*bootstrap.Runtime, *migration.Manager, error) {
	rt, err := bootstrap.Init(opts, true)
	if err != nil {
		return nil, nil, err
	}
	mgr, err := migration.NewManager(rt.DB, rt.Config.Database.Driver, rt.Log)
	if err != nil {
		rt.Close()
		return nil, nil, err
	}
	return rt, mgr, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	rt, mgr, err := newManager()
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.Log.Infow("running up migrations", "driver", rt.Config.Database.Driver)

	if err := mgr.Up(cmd.Context()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	rt, mgr, err := newManager()
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.Log.Infow("running down migrations", "driver", rt.Config.Database.Driver, "steps", steps)

	if err := mgr.Down(cmd.Context(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, mgr, err := newManager()
	if err != nil {
		return err
	}
	defer rt.Close()

	version, err := mgr.Version(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Driver:          %s\n", rt.Config.Database.Driver)
	fmt.Printf("  Current Version: %d\n", version)

	if err := mgr.Status(cmd.Context()); err != nil {
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Init(opts, false)
	if err != nil {
		return err
	}

	if err := migration.Create(dir, name, rt.Log); err != nil {
		return err
	}

	fmt.Printf("Migration '%s' created in %s\n", name, dir)
	return nil
}

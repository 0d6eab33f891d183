package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/helpdesk/internal/interfaces/cli/maintenance"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/migrate"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/seed"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/server"
)

// @title                      Helpdesk API
// @version                    1.0
// @description                Support ticketing and client management backend.
// @BasePath                   /api
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:          "helpdesk",
		Short:        "Helpdesk - support ticketing backend",
		Long:         `Helpdesk serves the ticketing API and ships the migration, seed and maintenance tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		maintenance.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

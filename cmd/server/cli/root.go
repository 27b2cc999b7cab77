// Package cli implements the server's command tree: serve, migrate and admin
// account provisioning.
package cli

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/iliyamo/bike-catalog-admin/internal/config"
	"github.com/iliyamo/bike-catalog-admin/internal/database"
	"github.com/iliyamo/bike-catalog-admin/internal/logging"
)

// Execute creates the root command tree and runs it.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Bicycle catalog admin API",
		Long:          "Administrative REST API for product types, part categories and part options.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newAdminCmd())
	return cmd
}

// loadConfig reads configuration and applies the logging settings.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat, nil)
	return cfg, nil
}

// openDB opens the configured database.
func openDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	return database.Open(ctx, cfg.DatabaseURL)
}

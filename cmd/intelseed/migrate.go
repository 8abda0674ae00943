package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the intelligence database tables",
		Long: `Migrate creates the database file if it does not exist and applies any
pending schema migrations. Running it again is a no-op.

Examples:
  # Migrate the default database
  intelseed migrate

  # Migrate a specific file
  intelseed migrate --db ./intelligence.db`,
		Args: cobra.NoArgs,
		RunE: runMigrateCmd,
	}
}

// runMigrateCmd executes the migrate command.
func runMigrateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)

	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	db, err := openDatabase(cfg, true)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "path", db.Path(), "error", err)
		}
	}()

	applied, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) to %s\n", applied, db.Path())
	return err
}

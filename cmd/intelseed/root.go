// Package main provides the entry point for the intelseed CLI.
package main

import (
	"fmt"
	"os"

	"github.com/nao1215/intelseed/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for intelseed.
// Running it without a subcommand seeds the database.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intelseed",
		Short: "Seed the local intelligence database with curated notes",
		Long: `intelseed inserts a fixed batch of research notes and optimization notes
into a local SQLite intelligence database in a single transaction.

Research notes whose title is already stored are skipped. Optimization notes
have no uniqueness constraint and are appended on every run.

The database file and its tables must already exist. Run "intelseed migrate"
once, or pass --create-schema, to create them.`,
		Args:          cobra.NoArgs,
		RunE:          runSeedCmd,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json-log", false, "Write log records as JSON")
	cmd.PersistentFlags().StringP("db", "d", "",
		fmt.Sprintf("Path to the SQLite database (default %s)", config.DefaultDBPath()))
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: .intelseed in current or home directory)")

	cmd.Flags().Bool("create-schema", false,
		"Create the database file and tables before seeding")

	// Add subcommands
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewCatalogCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

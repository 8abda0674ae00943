package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/intelseed/internal/config"
	"github.com/nao1215/intelseed/internal/database"
	ilog "github.com/nao1215/intelseed/internal/log"
	"github.com/nao1215/intelseed/internal/seed"
	"github.com/spf13/cobra"
)

// successMessage is the only line the seeding run writes to stdout.
const successMessage = "Database updated successfully."

// runSeedCmd executes the root command: seed the database once.
func runSeedCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	cfg.CreateSchema, err = cmd.Flags().GetBool("create-schema")
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)

	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	return runSeed(ctx, cmd.OutOrStdout(), cfg, logger)
}

// runSeed opens the database, runs the seeder and reports success.
func runSeed(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	db, err := openDatabase(cfg, cfg.CreateSchema)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "path", db.Path(), "error", err)
		}
	}()

	if cfg.CreateSchema {
		applied, err := db.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Debug("schema migrations applied", "path", db.Path(), "count", applied)
	}

	result, err := seed.New(seed.FromDB(db), seed.WithLogger(logger)).Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", db.Path(), err)
	}

	if st, err := db.Stats(ctx); err != nil {
		logger.Debug("failed to read database stats", "error", err)
	} else {
		logger.Debug("database totals",
			"path", db.Path(),
			"research_rows", st.ResearchRows,
			"optimization_rows", st.OptimizationRows,
			"latest_research_at", st.LatestResearchAt,
			"research_skipped", result.ResearchSkipped,
		)
	}

	_, err = fmt.Fprintln(out, successMessage)
	return err
}

// openDatabase opens the database described by cfg, creating the file when
// create is true.
func openDatabase(cfg *config.Config, create bool) (*database.IntelDB, error) {
	db, err := database.Open(cfg.DBPath, database.Options{
		CreateIfNotExists: create,
		EnableWAL:         cfg.EnableWAL,
		BusyTimeout:       cfg.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// buildConfig creates a Config from defaults, the config file and the
// cobra command flags, in increasing order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit --config must exist; a missing default file is fine.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("db") {
		cfg.DBPath, err = cmd.Flags().GetString("db")
		if err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	cfg.JSONLog, err = cmd.Flags().GetBool("json-log")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// setupLogger creates a structured logger writing to w.
func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.JSONLog {
		return ilog.NewJSONLogger(w, cfg.Verbose)
	}
	return ilog.NewLogger(w, cfg.Verbose)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, so an
// interrupted run rolls back its open transaction.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/intelseed/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed templates/intelseed.yaml
var configTemplate []byte

// pathPlaceholder is the commented-out database.path line of the template.
// init replaces it when --db is given.
const pathPlaceholder = "  # path: ~/clawd/intelligence.db"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .intelseed configuration file",
		Long: `Init writes a commented YAML configuration for intelseed.

Without --db the database path stays commented out, so the XDG default
(` + config.DefaultDBPath() + `) applies. With --db the path is written
into the file.

Examples:
  intelseed init
  intelseed init --db ~/clawd/intelligence.db
  intelseed init -o ~/.intelseed -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Where to write the configuration file")
	cmd.Flags().BoolP("force", "f", false,
		"Replace an existing file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	content := configTemplate
	// --db is a root persistent flag; it is absent when init runs standalone.
	if f := cmd.Flags().Lookup("db"); f != nil && f.Changed {
		content, err = renderTemplate(f.Value.String())
		if err != nil {
			return err
		}
	}

	if err := writeConfigFile(outputPath, content, force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Settings: database.path, database.wal, database.busyTimeout")
	return nil
}

// renderTemplate returns the template with database.path set to dbPath.
func renderTemplate(dbPath string) ([]byte, error) {
	if strings.ContainsAny(dbPath, "\r\n") {
		return nil, fmt.Errorf("database path must be a single line: %q", dbPath)
	}

	// Marshal quotes values that would otherwise read back as another type.
	scalar, err := yaml.Marshal(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to encode database path: %w", err)
	}

	line := "  path: " + strings.TrimSpace(string(scalar))
	rendered := strings.Replace(string(configTemplate), pathPlaceholder, line, 1)
	return []byte(rendered), nil
}

// writeConfigFile creates path with mode 0600. Unless force is set, an
// existing file is left untouched and ErrConfigExists is returned.
func writeConfigFile(path string, content []byte, force bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0600) //nolint:gosec // user-chosen output path
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s (use -f to overwrite)", config.ErrConfigExists, path)
		}
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return f.Close()
}

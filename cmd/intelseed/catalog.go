package main

import (
	"fmt"

	"github.com/nao1215/intelseed/internal/catalog"
	"github.com/nao1215/intelseed/internal/config"
	"github.com/nao1215/intelseed/internal/report"
	"github.com/spf13/cobra"
)

// NewCatalogCmd creates the catalog command.
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the notes that seeding inserts",
		Long: `Catalog prints the research notes and optimization notes compiled into
intelseed. It does not open the database.

Examples:
  # Human-readable summary
  intelseed catalog

  # Full abstracts
  intelseed catalog -v

  # Machine-readable output
  intelseed catalog --json
  intelseed catalog --markdown > catalog.md`,
		Args: cobra.NoArgs,
		RunE: runCatalogCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output in JSON format")
	cmd.Flags().BoolP("markdown", "m", false, "Output in Markdown format")

	return cmd
}

// runCatalogCmd executes the catalog command.
func runCatalogCmd(cmd *cobra.Command, _ []string) error {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOut && markdownOut {
		return config.ErrConflictingFormats
	}

	c := catalog.Default()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	var w report.Writer
	switch {
	case jsonOut:
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	case markdownOut:
		w = report.NewMarkdownWriter(cmd.OutOrStdout())
	default:
		w = report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(getVerboseFlag(cmd)))
	}

	if _, err := w.Write(c); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// sqliteModule is the module path of the database driver reported by version.
const sqliteModule = "modernc.org/sqlite"

// buildDetails is the subset of debug.BuildInfo that version reports.
type buildDetails struct {
	version  string
	revision string
	time     string
	driver   string
}

// readBuildDetails collects build information embedded by the Go toolchain.
// Missing values are left empty.
func readBuildDetails() buildDetails {
	var d buildDetails
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return d
	}

	d.version = info.Main.Version
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			d.revision = setting.Value
			if len(d.revision) > 7 {
				d.revision = d.revision[:7]
			}
		case "vcs.time":
			d.time = setting.Value
		}
	}
	for _, dep := range info.Deps {
		if dep.Path == sqliteModule {
			d.driver = dep.Version
			break
		}
	}
	return d
}

// firstNonEmpty returns the first non-empty value, or fallback.
func firstNonEmpty(fallback string, values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return fallback
}

// getVersion returns version string.
// Priority: ldflags > debug.ReadBuildInfo > "(devel)"
func getVersion() string {
	return firstNonEmpty("(devel)", version, readBuildDetails().version)
}

// getCommit returns commit hash.
// Priority: ldflags > debug.ReadBuildInfo > "unknown"
func getCommit() string {
	return firstNonEmpty("unknown", commit, readBuildDetails().revision)
}

// getDate returns build date.
// Priority: ldflags > debug.ReadBuildInfo > "unknown"
func getDate() string {
	return firstNonEmpty("unknown", date, readBuildDetails().time)
}

// getDriverVersion returns the version of the linked SQLite driver.
func getDriverVersion() string {
	return firstNonEmpty("unknown", readBuildDetails().driver)
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and SQLite driver version of intelseed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, getVersion())
				return nil
			}
			fmt.Fprintf(out, "intelseed version %s\n", getVersion())
			fmt.Fprintf(out, "  commit: %s\n", getCommit())
			fmt.Fprintf(out, "  built:  %s\n", getDate())
			fmt.Fprintf(out, "  sqlite: %s %s\n", sqliteModule, getDriverVersion())
			return nil
		},
	}

	cmd.Flags().BoolP("short", "s", false, "Print only the version number")

	return cmd
}

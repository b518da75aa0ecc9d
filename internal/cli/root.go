package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/schemasync/internal/logging"
	"github.com/user/schemasync/internal/schema"
)

var (
	dbPath      string
	profileName string
	profileFile string
	verbose     bool
	jsonLog     bool
)

// Execute runs the root command
func Execute(ctx context.Context, version string) error {
	rootCmd := &cobra.Command{
		Use:   "schemasync",
		Short: "A SQLite schema reconciliation tool",
		Long: color.CyanString(`schemasync - Schema Reconciliation Engine

Inspects a live SQLite database, compares it against a declared schema
profile, and applies the minimal additive set of changes - creating
missing tables and columns, never dropping or retyping anything. The
database file is backed up before any mutation.`),
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if jsonLog {
				slog.SetDefault(logging.SetupJSONLogger(verbose))
			} else {
				slog.SetDefault(logging.SetupLogger(verbose))
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "database.db", "Path to SQLite database file")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", fmt.Sprintf("Built-in schema profile to use (default %q)", schema.DefaultProfile))
	rootCmd.PersistentFlags().StringVar(&profileFile, "profile-file", "", "Path to a YAML schema profile (overrides --profile)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "log-json", false, "Emit logs as JSON")

	// Add subcommands
	rootCmd.AddCommand(newReconcileCommand())
	rootCmd.AddCommand(newPlanCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newBackupCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newProfilesCommand())

	return rootCmd.ExecuteContext(ctx)
}

// resolveProfile picks the profile for this run. A profile file wins
// over a built-in name; with neither given, the default built-in is
// used. The choice is always explicit or a documented default, never
// inferred from the database.
func resolveProfile() (*schema.Profile, error) {
	if profileFile != "" {
		return schema.LoadProfile(profileFile)
	}

	name := profileName
	if name == "" {
		name = schema.DefaultProfile
	}
	return schema.Builtin(name)
}

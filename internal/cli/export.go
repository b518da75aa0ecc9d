package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/schemasync/internal/db"
)

func newExportCommand() *cobra.Command {
	var (
		outputFile string
		format     string
		tables     []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the observed schema",
		Long: color.GreenString(`Write the live schema to a file.

Only table shape is exported, never row data. The sql format writes
the CREATE statements as SQLite records them; the json format writes
the observed snapshot.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := db.NewManager()
			if err := manager.Open(cmd.Context(), dbPath); err != nil {
				return err
			}
			defer manager.Close()

			err := db.NewExportManager(manager).Export(cmd.Context(), db.ExportOptions{
				OutputPath: outputFile,
				Format:     db.ExportFormat(format),
				Tables:     tables,
			})
			if err != nil {
				return err
			}

			color.Green("✓ Schema exported to %s", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFile, "output", "schema.sql", "Output file path")
	cmd.Flags().StringVar(&format, "format", "sql", "Export format (sql or json)")
	cmd.Flags().StringSliceVar(&tables, "tables", nil, "Tables to export (default all)")
	return cmd
}

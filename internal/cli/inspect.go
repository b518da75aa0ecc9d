package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/schemasync/internal/db"
)

func newInspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the observed schema of the live database",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := db.NewManager()
			if err := manager.Open(cmd.Context(), dbPath); err != nil {
				return err
			}
			defer manager.Close()

			inspector := db.NewInspector(manager.DB())
			tables, err := inspector.UserTables(cmd.Context())
			if err != nil {
				return err
			}

			snapshot, err := inspector.Snapshot(cmd.Context(), tables)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(snapshot, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal snapshot: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if len(tables) == 0 {
				color.Yellow("No user tables in %s", dbPath)
				return nil
			}

			for _, name := range tables {
				info, _ := snapshot.Table(name)
				color.Cyan("%s (%d columns)", name, len(info.Columns))
				for _, col := range info.Columns {
					line := fmt.Sprintf("  %-24s %s", col.Name, col.Type)
					if col.NotNull {
						line += " NOT NULL"
					}
					if col.Default != nil {
						line += " DEFAULT " + *col.Default
					}
					if col.PrimaryKey {
						line += " PRIMARY KEY"
					}
					fmt.Println(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the snapshot as JSON")
	return cmd
}

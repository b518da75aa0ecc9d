package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/schemasync/internal/db"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := db.NewManager()
			if err := manager.Open(cmd.Context(), dbPath); err != nil {
				return err
			}
			defer manager.Close()

			status, err := db.NewHealthManager(manager).CheckHealth(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Database: %s (%d bytes, %d tables, SQLite %s)\n",
				status.DatabasePath, status.DatabaseSize, status.TableCount, status.Version)

			for _, check := range status.Checks {
				line := fmt.Sprintf("  %-16s %s", check.Name, check.Message)
				if check.Value != "" {
					line += fmt.Sprintf(" (%s)", check.Value)
				}
				switch check.Status {
				case "OK":
					color.Green("%s", line)
				case "WARNING":
					color.Yellow("%s", line)
				default:
					color.Red("%s", line)
				}
			}

			if status.Status != "OK" {
				return fmt.Errorf("database health check reported %s", status.Status)
			}
			return nil
		},
	}
}

package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/schemasync/internal/db"
)

func newBackupCommand() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up the database file",
		Long: color.GreenString(`Copy the database file to its backup path.

The backup path is always the database path suffixed with ` + db.BackupSuffix + `;
a previous backup is overwritten.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := db.NewBackupManager(dbPath)

			record, err := manager.Backup(cmd.Context())
			if err != nil {
				return err
			}

			if record.Skipped {
				color.Yellow("%s", record)
				return nil
			}

			if verify {
				if err := manager.Verify(cmd.Context()); err != nil {
					return err
				}
				color.Green("✓ Backup verified")
			}

			color.Green("✓ Backup completed: %s", record)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Run an integrity check against the backup")
	return cmd
}

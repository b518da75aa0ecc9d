package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/schemasync/internal/schema"
)

func newProfilesCommand() *cobra.Command {
	var showTables bool

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List built-in schema profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range schema.BuiltinNames() {
				profile, err := schema.Builtin(name)
				if err != nil {
					return err
				}

				marker := " "
				if name == schema.DefaultProfile {
					marker = "*"
				}
				color.Cyan("%s %s (%s), %d tables", marker, profile.Name, profile.Version, len(profile.Tables))
				fmt.Printf("    %s\n", profile.Description)

				if showTables {
					for _, table := range profile.Tables {
						fmt.Printf("    %s (%d columns)\n", table.Name, len(table.Columns))
					}
				}
			}
			fmt.Println("\n* default profile")
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTables, "tables", false, "Also list each profile's tables")
	return cmd
}

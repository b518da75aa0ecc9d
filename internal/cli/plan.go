package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/schemasync/internal/engine"
)

func newPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the operations a reconcile run would apply",
		Long: color.GreenString(`Compute and print the reconciliation plan without applying it.

No backup is taken and nothing is mutated.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := resolveProfile()
			if err != nil {
				return err
			}

			runner, err := engine.NewRunner(engine.Options{
				DatabasePath: dbPath,
				Profile:      profile,
			})
			if err != nil {
				return err
			}

			ops, err := runner.Plan(cmd.Context())
			if err != nil {
				return err
			}

			if len(ops) == 0 {
				color.Green("Schema already satisfies profile %s, nothing to do", profile.Name)
				return nil
			}

			color.Yellow("Profile %s against %s:", profile.Name, dbPath)
			for _, op := range ops {
				fmt.Printf("  %s\n", op)
			}
			fmt.Printf("%d operation(s) would be applied\n", len(ops))
			return nil
		},
	}
}

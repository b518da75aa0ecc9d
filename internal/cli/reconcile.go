package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/schemasync/internal/engine"
	"github.com/user/schemasync/internal/prompt"
	"github.com/user/schemasync/internal/report"
	"github.com/user/schemasync/internal/schema"
)

func newReconcileCommand() *cobra.Command {
	var (
		yes         bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile the database schema against a profile",
		Long: color.GreenString(`Bring the database schema up to the selected profile.

The run backs up the database file first, then creates missing tables
and adds missing columns in declared order. Individual operation
failures are reported but do not stop the run; only a backup failure
aborts it.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := reconcileProfile(interactive)
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

			if !yes {
				ops, err := runner.Plan(cmd.Context())
				if err != nil {
					return err
				}

				if len(ops) > 0 {
					color.Yellow("Planned operations against %s:", dbPath)
					for _, op := range ops {
						fmt.Printf("  %s\n", op)
					}

					ok, err := prompt.ConfirmApply(len(ops))
					if err != nil {
						return err
					}
					if !ok {
						color.Yellow("Reconciliation cancelled, nothing was changed")
						return nil
					}
				}
			}

			// The run re-inspects; snapshots are never carried across
			// runs, including from the confirmation plan above.
			runReport, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			out, err := report.NewRenderer().RenderRunReport(runReport)
			if err != nil {
				return err
			}
			fmt.Println(out)

			summary := runReport.Summary()
			if summary.Failed > 0 {
				color.Yellow("Completed with %d failed operation(s), see report above", summary.Failed)
			} else if runReport.Converged() {
				color.Green("Schema already satisfied profile %s", runReport.Profile)
			} else {
				color.Green("✓ Schema reconciled (%d applied)", summary.Applied)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply without confirmation")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Select the profile interactively")
	return cmd
}

func reconcileProfile(interactive bool) (*schema.Profile, error) {
	if interactive && profileFile == "" && profileName == "" {
		name, err := prompt.SelectProfile(schema.BuiltinNames())
		if err != nil {
			return nil, err
		}
		return schema.Builtin(name)
	}
	return resolveProfile()
}

package main

import (
	"github.com/spf13/cobra"
)

func resetCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all expenses, subscriptions and the budget",
		Long: `Reset removes every expense, every subscription and the budget.
Display preferences are kept. This cannot be undone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !force {
				snap := a.ledger.Snapshot(ctx)
				a.printer.Warning("This will delete %d expenses and %d subscriptions.", len(snap.Expenses), len(snap.Subscriptions))
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to continue?")
				if err != nil {
					return err
				}
				if !ok {
					a.printer.Println("Reset canceled.")
					return nil
				}
			}
			if err := a.ledger.Reset(ctx); err != nil {
				return err
			}
			a.printer.Success("All financial data erased")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

func budgetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and review the monthly budget",
	}
	cmd.AddCommand(budgetSetCmd(a))
	cmd.AddCommand(budgetShowCmd(a))
	return cmd
}

func budgetSetCmd(a *app) *cobra.Command {
	var (
		total      string
		categories map[string]string
		keep       bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the monthly budget",
		Long: `Replace the monthly budget. Category budgets are optional and may add up
to more than the total.`,
		Example: `  fintrack budget set --total 1500 --category food=400 --category transport=150`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b := core.Budget{Categories: map[core.Category]core.Money{}}
			if keep {
				if current := a.ledger.GetBudget(ctx); current != nil {
					b.Total = current.Total
					for c, m := range current.Categories {
						b.Categories[c] = m
					}
				}
			}

			if cmd.Flags().Changed("total") {
				m, err := core.ParseMoney(total)
				if err != nil {
					return fmt.Errorf("total %q: %w", total, err)
				}
				b.Total = m
			}
			for name, raw := range categories {
				c, err := core.ParseCategory(name)
				if err != nil {
					return err
				}
				m, err := core.ParseMoney(raw)
				if err != nil {
					return fmt.Errorf("%s budget %q: %w", c, raw, err)
				}
				if m.IsZero() {
					delete(b.Categories, c)
					continue
				}
				b.Categories[c] = m
			}

			if err := a.ledger.SaveBudget(ctx, b); err != nil {
				return err
			}
			a.printer.Success("Budget saved: %s per month", core.FormatCurrency(b.Total))
			if b.Unallocated().IsNegative() {
				a.printer.Warning("Category budgets exceed the total by %s", core.FormatCurrency(b.Unallocated().Mul(-1)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&total, "total", "t", "", "monthly total")
	cmd.Flags().StringToStringVarP(&categories, "category", "c", nil, "category budget as name=amount; 0 removes it")
	cmd.Flags().BoolVar(&keep, "keep", false, "start from the saved budget instead of an empty one")
	return cmd
}

func budgetShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Compare this month's spending with the budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			start, end := analytics.CurrentMonth(a.now())
			month := analytics.FilterByDateRange(a.ledger.ListExpenses(ctx), start, end)
			return a.printer.Budget(analytics.BudgetStatus(a.ledger.GetBudget(ctx), month))
		},
	}
}

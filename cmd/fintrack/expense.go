package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

type expenseFlags struct {
	amount      string
	category    string
	date        string
	description string
}

func (f *expenseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, e.g. 12.50")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category ("+categoryNames()+")")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&f.description, "description", "m", "", "what the money was spent on")
}

// apply copies the flags that were set onto e.
func (f *expenseFlags) apply(cmd *cobra.Command, e *core.Expense) error {
	flags := cmd.Flags()
	if flags.Changed("amount") {
		amount, err := core.ParseMoney(f.amount)
		if err != nil {
			return fmt.Errorf("amount %q: %w", f.amount, err)
		}
		e.Amount = amount
	}
	if flags.Changed("category") {
		c, err := core.ParseCategory(f.category)
		if err != nil {
			return err
		}
		e.Category = c
	}
	if flags.Changed("date") {
		d, err := core.ParseDate(f.date)
		if err != nil {
			return err
		}
		e.Date = d
	}
	if flags.Changed("description") {
		e.Description = strings.TrimSpace(f.description)
	}
	return nil
}

func expenseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses", "e"},
		Short:   "Record and review expenses",
	}
	cmd.AddCommand(expenseAddCmd(a))
	cmd.AddCommand(expenseListCmd(a))
	cmd.AddCommand(expenseUpdateCmd(a))
	cmd.AddCommand(expenseDeleteCmd(a))
	return cmd
}

func expenseAddCmd(a *app) *cobra.Command {
	var f expenseFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Example: `  fintrack expense add -a 12.50 -c food -m "Lunch"
  fintrack expense add -a 60 -c transport -d 2024-03-01 -m "Train pass"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := core.Expense{Date: today(a.now())}
			if err := f.apply(cmd, &e); err != nil {
				return err
			}
			added, err := a.ledger.AddExpense(cmd.Context(), e)
			if err != nil {
				return err
			}
			a.printer.Success("Added %s %s on %s (%s)",
				core.FormatCurrency(added.Amount), added.Category, core.FormatDate(added.Date.Time), added.ID)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func expenseListCmd(a *app) *cobra.Command {
	var (
		from, to, category, search string
		months                     int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Long: `List expenses filtered by date range, category and a case-insensitive
search over description and category. Without a range every expense is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := analytics.ExpenseQuery{Term: search}
			if months > 0 {
				q = analytics.LastMonths(a.now(), months)
				q.Term = search
			}
			if from != "" {
				d, err := core.ParseDate(from)
				if err != nil {
					return err
				}
				q.Start = d.Time
			}
			if to != "" {
				d, err := core.ParseDate(to)
				if err != nil {
					return err
				}
				q.End = endOfDay(d.Time)
			}
			if q.End.IsZero() {
				q.End = farFuture
			}
			if category != "" {
				c, err := core.ParseCategory(category)
				if err != nil {
					return err
				}
				q.Category = c
			}
			return a.printer.Expenses(q.Apply(a.ledger.ListExpenses(cmd.Context())))
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().IntVar(&months, "months", 0, "only the last N months")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search description and category")
	return cmd
}

func expenseUpdateCmd(a *app) *cobra.Command {
	var f expenseFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.ledger.GetExpense(ctx, args[0])
			if err != nil {
				return err
			}
			if err := f.apply(cmd, &e); err != nil {
				return err
			}
			if err := a.ledger.UpdateExpense(ctx, e); err != nil {
				return err
			}
			a.printer.Success("Updated expense %s", e.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func expenseDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "Delete expenses",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := a.ledger.DeleteExpense(cmd.Context(), id); err != nil {
					return err
				}
			}
			a.printer.Success("Deleted %d expense(s)", len(args))
			return nil
		},
	}
}

func categoryNames() string {
	names := make([]string, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		names = append(names, strings.ToLower(c.String()))
	}
	return strings.Join(names, ", ")
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

type subscriptionFlags struct {
	name        string
	service     string
	amount      string
	cycle       string
	start       string
	next        string
	category    string
	description string
}

func (f *subscriptionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "display name")
	cmd.Flags().StringVar(&f.service, "service", "", "known service for the icon color, e.g. netflix")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "charge per cycle")
	cmd.Flags().StringVar(&f.cycle, "cycle", "", "billing cycle (monthly, quarterly, annual)")
	cmd.Flags().StringVar(&f.start, "start", "", "start date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&f.next, "next", "", "next billing date as YYYY-MM-DD")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category ("+categoryNames()+")")
	cmd.Flags().StringVarP(&f.description, "description", "m", "", "optional note")
}

// apply copies the flags that were set onto s.
func (f *subscriptionFlags) apply(cmd *cobra.Command, s *core.Subscription) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		s.Name = strings.TrimSpace(f.name)
	}
	if flags.Changed("service") {
		s.Service = f.service
	}
	if flags.Changed("amount") {
		amount, err := core.ParseMoney(f.amount)
		if err != nil {
			return fmt.Errorf("amount %q: %w", f.amount, err)
		}
		s.Amount = amount
	}
	if flags.Changed("cycle") {
		c, err := core.ParseCycle(f.cycle)
		if err != nil {
			return err
		}
		s.Cycle = c
	}
	if flags.Changed("start") {
		d, err := core.ParseDate(f.start)
		if err != nil {
			return err
		}
		s.StartDate = d
	}
	if flags.Changed("next") {
		d, err := core.ParseDate(f.next)
		if err != nil {
			return err
		}
		s.NextBillingDate = d
	}
	if flags.Changed("category") {
		c, err := core.ParseCategory(f.category)
		if err != nil {
			return err
		}
		s.Category = c
	}
	if flags.Changed("description") {
		s.Description = strings.TrimSpace(f.description)
	}
	return nil
}

func subscriptionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sub",
		Aliases: []string{"subscription", "subscriptions", "s"},
		Short:   "Manage recurring subscriptions",
	}
	cmd.AddCommand(subAddCmd(a))
	cmd.AddCommand(subListCmd(a))
	cmd.AddCommand(subUpdateCmd(a))
	cmd.AddCommand(subDeleteCmd(a))
	cmd.AddCommand(subUpcomingCmd(a))
	cmd.AddCommand(subRollCmd(a))
	cmd.AddCommand(subScheduleCmd(a))
	cmd.AddCommand(subServicesCmd(a))
	return cmd
}

func subAddCmd(a *app) *cobra.Command {
	var f subscriptionFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subscription",
		Long: `Add a subscription. The next billing date defaults to one cycle after the
start date, clamped to the end of shorter months.`,
		Example: `  fintrack sub add -n Netflix --service netflix -a 15.49 --cycle monthly -c entertainment`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := core.Subscription{Cycle: core.Monthly, StartDate: today(a.now())}
			if err := f.apply(cmd, &s); err != nil {
				return err
			}
			added, err := a.ledger.AddSubscription(cmd.Context(), s)
			if err != nil {
				return err
			}
			a.printer.Success("Added %s, %s %s, next billing %s (%s)",
				added.Name, core.FormatCurrency(added.Amount), strings.ToLower(added.Cycle.String()),
				core.FormatDate(added.NextBillingDate.Time), added.ID)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func subListCmd(a *app) *cobra.Command {
	var search, cycle string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions by next billing date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subs := a.ledger.ListSubscriptions(cmd.Context())
			if cycle != "" {
				c, err := core.ParseCycle(cycle)
				if err != nil {
					return err
				}
				subs = analytics.FilterByCycle(subs, c)
			}
			subs = analytics.SearchSubscriptions(subs, search)
			return a.printer.Subscriptions(analytics.SortByNextBilling(subs))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search name, service and category")
	cmd.Flags().StringVar(&cycle, "cycle", "", "only this billing cycle")
	return cmd
}

func subUpdateCmd(a *app) *cobra.Command {
	var f subscriptionFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a subscription",
		Long: `Change fields of a subscription. The next billing date is only changed
when --next is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.ledger.GetSubscription(ctx, args[0])
			if err != nil {
				return err
			}
			if err := f.apply(cmd, &s); err != nil {
				return err
			}
			if err := a.ledger.UpdateSubscription(ctx, s); err != nil {
				return err
			}
			a.printer.Success("Updated subscription %s", s.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func subDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "Delete subscriptions",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := a.ledger.DeleteSubscription(cmd.Context(), id); err != nil {
					return err
				}
			}
			a.printer.Success("Deleted %d subscription(s)", len(args))
			return nil
		},
	}
}

func subUpcomingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "Show subscriptions billed within the next month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := a.now()
			subs := analytics.UpcomingSubscriptions(a.ledger.ListSubscriptions(cmd.Context()), now)
			return a.printer.Upcoming(analytics.SortByNextBilling(subs), now)
		},
	}
}

func subRollCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Move past billing dates to their next charge",
		Long: `Move every next billing date at or before now to the first charge
after now. Dates are kept on the schedule set by the start date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if dryRun {
				renewals, err := a.renewals.Preview(ctx, a.now())
				if err != nil {
					return err
				}
				return a.printer.Renewals(renewals)
			}
			renewals, err := a.renewals.RollForward(ctx, a.now())
			if err != nil {
				return err
			}
			if err := a.printer.Renewals(renewals); err != nil {
				return err
			}
			if len(renewals) > 0 {
				a.printer.Success("Rolled forward %d subscription(s)", len(renewals))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the changes without saving them")
	return cmd
}

func subScheduleCmd(a *app) *cobra.Command {
	var (
		count     int
		showRRule bool
	)
	cmd := &cobra.Command{
		Use:   "schedule ID",
		Short: "List the coming charges of a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.ledger.GetSubscription(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			charges, err := services.ChargeSchedule(s, count)
			if err != nil {
				return err
			}
			if err := a.printer.Schedule(s, charges); err != nil {
				return err
			}
			if showRRule {
				rule, err := services.RecurrenceRule(s)
				if err != nil {
					return err
				}
				a.printer.Println("RRULE:" + rule)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 6, "number of charges to list")
	cmd.Flags().BoolVar(&showRRule, "rrule", false, "also print the RFC 5545 recurrence rule")
	return cmd
}

func subServicesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the known services and their colors",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.printer.Services(core.Services())
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/analytics"
)

func overviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "overview",
		Aliases: []string{"home"},
		Short:   "Show this month at a glance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			now := a.now()
			report := analytics.Overview(a.ledger.Snapshot(ctx), now)
			return a.printer.Overview(a.prefs.Load(ctx).DisplayName, report, now)
		},
	}
}

// statsRanges are the trailing windows offered by the statistics view.
var statsRanges = []int{3, 6, 12}

func statsCmd(a *app) *cobra.Command {
	var months int
	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"statistics"},
		Short:   "Break spending down by category over recent months",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !validRange(months) {
				return fmt.Errorf("invalid range %d: must be one of %v", months, statsRanges)
			}
			report := analytics.Statistics(a.ledger.ListExpenses(cmd.Context()), a.now(), months)
			return a.printer.Statistics(report)
		},
	}
	cmd.Flags().IntVarP(&months, "range", "r", 6, "months to include (3, 6 or 12)")
	return cmd
}

func validRange(months int) bool {
	for _, r := range statsRanges {
		if r == months {
			return true
		}
	}
	return false
}

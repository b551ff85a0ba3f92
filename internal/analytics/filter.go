// Package analytics derives totals, rankings, search results and chart series
// from in-memory expense and subscription collections.
//
// Every function here is pure: inputs are never mutated and results are
// freshly allocated. Inputs are assumed to be already validated.
package analytics

import (
	"sort"
	"strings"
	"time"

	"fintrack/internal/core"
)

// FilterByDateRange keeps the expenses dated within [start, end]. Both bounds
// are inclusive and input order is preserved.
func FilterByDateRange(expenses []core.Expense, start, end time.Time) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if inRange(e.Date.Time, start, end) {
			out = append(out, e)
		}
	}
	return out
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// FilterByCategory keeps the expenses of one category.
func FilterByCategory(expenses []core.Expense, c core.Category) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// FilterByCycle keeps the subscriptions billed on the given cycle.
func FilterByCycle(subs []core.Subscription, c core.Cycle) []core.Subscription {
	out := make([]core.Subscription, 0, len(subs))
	for _, s := range subs {
		if s.Cycle == c {
			out = append(out, s)
		}
	}
	return out
}

// SortByDateDesc returns a copy ordered newest first. Equal dates keep their
// input order.
func SortByDateDesc(expenses []core.Expense) []core.Expense {
	out := append([]core.Expense(nil), expenses...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// SortByNextBilling returns a copy ordered by the soonest next charge.
func SortByNextBilling(subs []core.Subscription) []core.Subscription {
	out := append([]core.Subscription(nil), subs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextBillingDate.Before(out[j].NextBillingDate.Time)
	})
	return out
}

// SearchExpenses matches term case-insensitively against description and
// category. A blank term returns the input unchanged.
func SearchExpenses(expenses []core.Expense, term string) []core.Expense {
	term = normalizeTerm(term)
	if term == "" {
		return expenses
	}
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if containsFold(e.Description, term) || containsFold(string(e.Category), term) {
			out = append(out, e)
		}
	}
	return out
}

// SearchSubscriptions matches term case-insensitively against name, service,
// description and category. A blank term returns the input unchanged.
func SearchSubscriptions(subs []core.Subscription, term string) []core.Subscription {
	term = normalizeTerm(term)
	if term == "" {
		return subs
	}
	out := make([]core.Subscription, 0, len(subs))
	for _, s := range subs {
		if containsFold(s.Name, term) ||
			containsFold(s.Service, term) ||
			containsFold(s.Description, term) ||
			containsFold(string(s.Category), term) {
			out = append(out, s)
		}
	}
	return out
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// containsFold reports whether s contains the already lowercased term.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

// UpcomingSubscriptions keeps subscriptions charged strictly after now and
// strictly before the same time one calendar month later.
func UpcomingSubscriptions(subs []core.Subscription, now time.Time) []core.Subscription {
	horizon := core.AddMonthsClamped(now, 1)
	out := make([]core.Subscription, 0, len(subs))
	for _, s := range subs {
		next := s.NextBillingDate.Time
		if next.After(now) && next.Before(horizon) {
			out = append(out, s)
		}
	}
	return out
}

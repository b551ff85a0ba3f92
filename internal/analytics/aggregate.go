package analytics

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

// Total sums expense amounts. An empty input totals zero.
func Total(expenses []core.Expense) core.Money {
	var sum core.Money
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// GroupByCategory sums amounts per category. Categories without expenses are
// absent from the result rather than mapped to zero.
func GroupByCategory(expenses []core.Expense) map[core.Category]core.Money {
	out := make(map[core.Category]core.Money)
	for _, e := range expenses {
		out[e.Category] = out[e.Category].Add(e.Amount)
	}
	return out
}

// MonthlySubscriptionCost normalizes each charge to a monthly rate with the
// fixed divisors 1, 3 and 12 and sums the result.
func MonthlySubscriptionCost(subs []core.Subscription) core.Money {
	var sum core.Money
	for _, s := range subs {
		sum = sum.Add(MonthlyEquivalent(s))
	}
	return sum
}

// MonthlyEquivalent is the monthly rate of a single subscription.
func MonthlyEquivalent(s core.Subscription) core.Money {
	return s.Amount.Div(s.Cycle.MonthlyDivisor())
}

// TopCategories ranks grouped totals descending and keeps the first n.
// Equal amounts are ordered by category declaration order.
func TopCategories(grouped map[core.Category]core.Money, n int) []core.CategoryAmount {
	ranked := make([]core.CategoryAmount, 0, len(grouped))
	for c, amount := range grouped {
		ranked = append(ranked, core.CategoryAmount{Category: c, Amount: amount})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if cmp := ranked[i].Amount.Cmp(ranked[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return categoryLess(ranked[i].Category, ranked[j].Category)
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopThree is TopCategories with the ranking depth used by the statistics view.
func TopThree(grouped map[core.Category]core.Money) []core.CategoryAmount {
	return TopCategories(grouped, 3)
}

// categoryLess orders known categories by declaration and unknown ones by name
// after them, so ranking stays deterministic for any input.
func categoryLess(a, b core.Category) bool {
	ia, ib := a.Index(), b.Index()
	if ia != ib {
		return ia < ib
	}
	return a < b
}

// StartOfMonth is midnight on the first day of t's month, in t's location.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth is the last nanosecond of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// CurrentMonth returns the inclusive window of now's calendar month.
func CurrentMonth(now time.Time) (start, end time.Time) {
	return StartOfMonth(now), EndOfMonth(now)
}

package analytics

import (
	"time"

	"fintrack/internal/core"
)

// ExpenseQuery is the combined filter of the expense list view. A zero
// Category means every category and a blank Term disables search.
type ExpenseQuery struct {
	Start    time.Time
	End      time.Time
	Category core.Category
	Term     string
}

// LastMonths is the query window from n calendar months before now up to now.
func LastMonths(now time.Time, n int) ExpenseQuery {
	return ExpenseQuery{Start: core.AddMonthsClamped(now, -n), End: now}
}

// Apply filters by date range, then category, then search term, and returns
// the matches newest first.
func (q ExpenseQuery) Apply(expenses []core.Expense) []core.Expense {
	out := FilterByDateRange(expenses, q.Start, q.End)
	if q.Category != "" {
		out = FilterByCategory(out, q.Category)
	}
	out = SearchExpenses(out, q.Term)
	return SortByDateDesc(out)
}

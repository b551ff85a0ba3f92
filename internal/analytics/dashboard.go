package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

const (
	// TrendMonths is the length of the spending trend on the overview.
	TrendMonths = 6
	// PreviewSize caps the recent and upcoming lists on the overview.
	PreviewSize = 3
)

var hundred = decimal.NewFromInt(100)

// CategoryBudget compares one category sub-budget with its spending.
type CategoryBudget struct {
	Category    core.Category
	Limit       core.Money
	Spent       core.Money
	Remaining   core.Money
	PercentUsed float64
	Over        bool
}

// BudgetReport compares the budget with the spending of a period.
type BudgetReport struct {
	// Set is false when no budget has been saved.
	Set         bool
	Total       core.Money
	Spent       core.Money
	Remaining   core.Money
	PercentUsed float64
	OverBudget  bool
	Allocated   core.Money
	Unallocated core.Money
	Categories  []CategoryBudget
}

// BudgetStatus evaluates budget against expenses, which should already be
// limited to the budget period. A nil budget behaves as a zero total.
// Category rows follow declaration order and only exist for categories with a
// sub-budget.
func BudgetStatus(budget *core.Budget, expenses []core.Expense) BudgetReport {
	spent := Total(expenses)
	r := BudgetReport{Spent: spent, Remaining: spent.Mul(-1)}
	if budget == nil {
		return r
	}

	r.Set = true
	r.Total = budget.Total
	r.Remaining = budget.Total.Sub(spent)
	r.PercentUsed = percent(spent, budget.Total)
	r.OverBudget = spent.Cmp(budget.Total) > 0
	r.Allocated = budget.Allocated()
	r.Unallocated = budget.Unallocated()

	grouped := GroupByCategory(expenses)
	for _, c := range core.Categories() {
		limit, ok := budget.Categories[c]
		if !ok {
			continue
		}
		used := grouped[c]
		r.Categories = append(r.Categories, CategoryBudget{
			Category:    c,
			Limit:       limit,
			Spent:       used,
			Remaining:   limit.Sub(used),
			PercentUsed: percent(used, limit),
			Over:        used.Cmp(limit) > 0,
		})
	}
	return r
}

// percent is part/whole*100, or 0 when whole is zero.
func percent(part, whole core.Money) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Decimal().Div(whole.Decimal()).Mul(hundred).InexactFloat64()
}

// OverviewReport is the home dashboard.
type OverviewReport struct {
	Month            time.Time
	MonthTotal       core.Money
	MonthExpenses    []core.Expense
	Recent           []core.Expense
	SubscriptionCost core.Money
	Upcoming         []core.Subscription
	Budget           BudgetReport
	Trend            Series
}

// Overview summarizes the current month of snap as seen at now.
func Overview(snap core.Snapshot, now time.Time) OverviewReport {
	start, end := CurrentMonth(now)
	month := FilterByDateRange(snap.Expenses, start, end)
	upcoming := SortByNextBilling(UpcomingSubscriptions(snap.Subscriptions, now))

	return OverviewReport{
		Month:            start,
		MonthTotal:       Total(month),
		MonthExpenses:    month,
		Recent:           head(month, PreviewSize),
		SubscriptionCost: MonthlySubscriptionCost(snap.Subscriptions),
		Upcoming:         upcoming,
		Budget:           BudgetStatus(snap.Budget, month),
		Trend:            MonthlySeries(snap.Expenses, now, TrendMonths),
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// StatisticsReport is the spending breakdown over a trailing window.
type StatisticsReport struct {
	Start          time.Time
	End            time.Time
	Total          core.Money
	AverageMonthly core.Money
	ByCategory     map[core.Category]core.Money
	Pie            []PieSlice
	Top            []core.CategoryAmount
	Trend          Series
}

// Statistics analyses the expenses dated within rangeMonths calendar months
// before now, up to now. The trend has one point per calendar month touched
// by the window, so it spans rangeMonths+1 months, and the monthly average
// divides by that count.
func Statistics(expenses []core.Expense, now time.Time, rangeMonths int) StatisticsReport {
	if rangeMonths < 0 {
		rangeMonths = 0
	}
	start := core.AddMonthsClamped(now, -rangeMonths)
	filtered := FilterByDateRange(expenses, start, now)
	grouped := GroupByCategory(filtered)
	trend := seriesOf(monthlyTotalsFrom(expenses, StartOfMonth(start), rangeMonths+1))
	total := Total(filtered)

	return StatisticsReport{
		Start:          start,
		End:            now,
		Total:          total,
		AverageMonthly: total.Div(int64(trend.Len())),
		ByCategory:     grouped,
		Pie:            PieChart(grouped),
		Top:            TopThree(grouped),
		Trend:          trend,
	}
}

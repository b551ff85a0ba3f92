package analytics

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

// FallbackColor is used for categories missing from the color table.
const FallbackColor = "#CCCCCC"

var categoryColors = map[core.Category]string{
	core.Food:          "#0070F3",
	core.Transport:     "#F5A623",
	core.Entertainment: "#7928CA",
	core.Utilities:     "#17C964",
	core.Shopping:      "#F31260",
	core.Health:        "#0AC5B3",
	core.Education:     "#9751F2",
	core.Other:         "#888888",
}

// CategoryColor returns the chart color of c.
func CategoryColor(c core.Category) string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return FallbackColor
}

// Series holds parallel label and value sequences for a line chart.
type Series struct {
	Labels []string
	Values []core.Money
}

// Len is the number of points in the series.
func (s Series) Len() int {
	return len(s.Labels)
}

// Floats returns the values as float64 for plotting.
func (s Series) Floats() []float64 {
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i] = v.Float64()
	}
	return out
}

// PieSlice is one category wedge of a pie chart.
type PieSlice struct {
	Category core.Category
	Amount   core.Money
	Color    string
}

// MonthlyTotals sums expenses per calendar month for the n months ending with
// the month of now, oldest first. Month boundaries follow now's location.
func MonthlyTotals(expenses []core.Expense, now time.Time, n int) []core.MonthTotal {
	if n <= 0 {
		return nil
	}
	first := core.AddMonthsClamped(StartOfMonth(now), -(n - 1))
	return monthlyTotalsFrom(expenses, first, n)
}

func monthlyTotalsFrom(expenses []core.Expense, first time.Time, n int) []core.MonthTotal {
	out := make([]core.MonthTotal, 0, n)
	for i := 0; i < n; i++ {
		start := core.AddMonthsClamped(first, i)
		inMonth := FilterByDateRange(expenses, start, EndOfMonth(start))
		out = append(out, core.MonthTotal{
			Year:  start.Year(),
			Month: int(start.Month()),
			Label: start.Format("Jan"),
			Total: Total(inMonth),
		})
	}
	return out
}

// MonthlySeries is MonthlyTotals shaped for a line chart.
func MonthlySeries(expenses []core.Expense, now time.Time, n int) Series {
	return seriesOf(MonthlyTotals(expenses, now, n))
}

func seriesOf(months []core.MonthTotal) Series {
	s := Series{
		Labels: make([]string, 0, len(months)),
		Values: make([]core.Money, 0, len(months)),
	}
	for _, m := range months {
		s.Labels = append(s.Labels, m.Label)
		s.Values = append(s.Values, m.Total)
	}
	return s
}

// PieChart turns a grouped category map into slices. Known categories come in
// declaration order, unknown ones follow by name.
func PieChart(grouped map[core.Category]core.Money) []PieSlice {
	cats := make([]core.Category, 0, len(grouped))
	for c := range grouped {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return categoryLess(cats[i], cats[j]) })

	out := make([]PieSlice, 0, len(cats))
	for _, c := range cats {
		out = append(out, PieSlice{Category: c, Amount: grouped[c], Color: CategoryColor(c)})
	}
	return out
}

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

const barWidth = 20

// Printer writes styled reports to one output.
type Printer struct {
	out    io.Writer
	styles Styles
}

func NewPrinter(out io.Writer, styles Styles) *Printer {
	return &Printer{out: out, styles: styles}
}

// Println writes a line of text.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.styles.FormatSuccess(fmt.Sprintf(format, args...)))
}

func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.out, p.styles.FormatWarning(fmt.Sprintf(format, args...)))
}

func (p *Printer) title(s string) {
	fmt.Fprintln(p.out, p.styles.Title.Render(s))
}

func (p *Printer) table(headers ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = p.styles.Header.Render(h)
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))
	return w
}

func row(w io.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}

// Expenses lists expenses in the given order.
func (p *Printer) Expenses(expenses []core.Expense) error {
	if len(expenses) == 0 {
		p.Println(p.styles.Subtle.Render("No expenses found."))
		return nil
	}
	w := p.table("ID", "DATE", "CATEGORY", "AMOUNT", "DESCRIPTION")
	for _, e := range expenses {
		row(w, e.ID, core.FormatDate(e.Date.Time), e.Category.String(), core.FormatCurrency(e.Amount), e.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	p.Println(p.styles.Subtle.Render(fmt.Sprintf("%d expenses, %s total", len(expenses), core.FormatCurrency(analytics.Total(expenses)))))
	return nil
}

// Subscriptions lists subscriptions with their monthly equivalent.
func (p *Printer) Subscriptions(subs []core.Subscription) error {
	if len(subs) == 0 {
		p.Println(p.styles.Subtle.Render("No subscriptions found."))
		return nil
	}
	w := p.table("ID", "", "NAME", "AMOUNT", "CYCLE", "MONTHLY", "NEXT BILLING", "CATEGORY")
	for _, s := range subs {
		svc, _ := core.LookupService(s.Service)
		row(w, s.ID, Swatch(svc.Color), s.Name,
			core.FormatCurrency(s.Amount), s.Cycle.String(),
			core.FormatCurrency(analytics.MonthlyEquivalent(s)),
			core.FormatDate(s.NextBillingDate.Time), s.Category.String())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	p.Println(p.styles.Subtle.Render(fmt.Sprintf("%s per month", core.FormatCurrency(analytics.MonthlySubscriptionCost(subs)))))
	return nil
}

// Budget shows the budget against the spending of the current month.
func (p *Printer) Budget(r analytics.BudgetReport) error {
	if !r.Set {
		p.Println(p.styles.Subtle.Render("No budget set. Use 'fintrack budget set' to create one."))
		p.Println(fmt.Sprintf("Spent this month: %s", core.FormatCurrency(r.Spent)))
		return nil
	}

	p.title("Monthly budget")
	p.Println(fmt.Sprintf("%s  %s of %s (%.0f%%)",
		p.styles.Bar(r.PercentUsed/100, barWidth),
		core.FormatCurrency(r.Spent), core.FormatCurrency(r.Total), r.PercentUsed))
	if r.OverBudget {
		p.Warning("Over budget by %s", core.FormatCurrency(r.Remaining.Mul(-1)))
	} else {
		p.Println(fmt.Sprintf("Remaining: %s", p.styles.Amount.Render(core.FormatCurrency(r.Remaining))))
	}

	if len(r.Categories) == 0 {
		return nil
	}
	p.Println()
	w := p.table("CATEGORY", "LIMIT", "SPENT", "REMAINING", "USED")
	for _, c := range r.Categories {
		used := fmt.Sprintf("%.0f%%", c.PercentUsed)
		if c.Over {
			used = p.styles.Error.Render(used)
		}
		row(w, c.Category.String(), core.FormatCurrency(c.Limit), core.FormatCurrency(c.Spent), core.FormatCurrency(c.Remaining), used)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if r.Unallocated.IsNegative() {
		p.Warning("Category budgets exceed the total by %s", core.FormatCurrency(r.Unallocated.Mul(-1)))
	} else {
		p.Println(p.styles.Subtle.Render("Unallocated: " + core.FormatCurrency(r.Unallocated)))
	}
	return nil
}

// Overview renders the home dashboard.
func (p *Printer) Overview(name string, r analytics.OverviewReport, now time.Time) error {
	p.title(fmt.Sprintf("Hello, %s", name))
	p.Println(p.styles.Subtitle.Render(r.Month.Format("January 2006")))
	p.Println()

	p.Println(fmt.Sprintf("Spent this month:   %s", p.styles.Amount.Render(core.FormatCurrency(r.MonthTotal))))
	p.Println(fmt.Sprintf("Subscriptions:      %s / month", core.FormatCurrency(r.SubscriptionCost)))
	if r.Budget.Set {
		p.Println(fmt.Sprintf("Budget remaining:   %s  %s",
			core.FormatCurrency(r.Budget.Remaining), p.styles.Bar(r.Budget.PercentUsed/100, barWidth)))
	}
	p.Println()

	p.title("Recent expenses")
	if err := p.Expenses(r.Recent); err != nil {
		return err
	}
	p.Println()

	p.title("Upcoming renewals")
	if err := p.Upcoming(head(r.Upcoming, analytics.PreviewSize), now); err != nil {
		return err
	}
	p.Println()

	p.title("Trend")
	return p.trend(r.Trend)
}

// Statistics renders the category breakdown and trend of a window.
func (p *Printer) Statistics(r analytics.StatisticsReport) error {
	p.title("Statistics")
	p.Println(p.styles.Subtitle.Render(fmt.Sprintf("%s to %s", core.FormatDate(r.Start), core.FormatDate(r.End))))
	p.Println(fmt.Sprintf("Total: %s   Monthly average: %s",
		p.styles.Amount.Render(core.FormatCurrency(r.Total)), core.FormatCurrency(r.AverageMonthly)))
	p.Println()

	if len(r.Pie) == 0 {
		p.Println(p.styles.Subtle.Render("No expenses in this period."))
	} else {
		w := p.table("", "CATEGORY", "AMOUNT", "SHARE")
		for _, s := range r.Pie {
			share := 0.0
			if !r.Total.IsZero() {
				share = s.Amount.Float64() / r.Total.Float64() * 100
			}
			row(w, Swatch(s.Color), s.Category.String(), core.FormatCurrency(s.Amount), fmt.Sprintf("%.1f%%", share))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(r.Top) > 0 {
		p.Println()
		p.title("Top categories")
		for i, c := range r.Top {
			p.Println(fmt.Sprintf("%d. %s  %s", i+1, c.Category, core.FormatCurrency(c.Amount)))
		}
	}
	p.Println()

	p.title("Trend")
	return p.trend(r.Trend)
}

// Upcoming lists subscriptions due soon, soonest first.
func (p *Printer) Upcoming(subs []core.Subscription, now time.Time) error {
	if len(subs) == 0 {
		p.Println(p.styles.Subtle.Render("Nothing due in the next month."))
		return nil
	}
	w := p.table("NAME", "AMOUNT", "DUE", "")
	for _, s := range subs {
		row(w, s.Name, core.FormatCurrency(s.Amount), core.FormatDate(s.NextBillingDate.Time), DueIn(now, s.NextBillingDate.Time))
	}
	return w.Flush()
}

// Schedule lists the coming charges of one subscription with a running total.
func (p *Printer) Schedule(s core.Subscription, charges []time.Time) error {
	p.title(fmt.Sprintf("%s, %s %s", s.Name, core.FormatCurrency(s.Amount), strings.ToLower(s.Cycle.String())))
	w := p.table("#", "DATE", "TOTAL")
	var total core.Money
	for i, c := range charges {
		total = total.Add(s.Amount)
		row(w, fmt.Sprint(i+1), core.FormatDate(c), core.FormatCurrency(total))
	}
	return w.Flush()
}

// Services lists catalog keys with their brand color.
func (p *Printer) Services(keys []string) error {
	w := p.table("", "SERVICE", "KEY", "COLOR")
	for _, k := range keys {
		svc, _ := core.LookupService(k)
		row(w, Swatch(svc.Color), core.ServiceDisplayName(svc.Key), svc.Key, svc.Color)
	}
	return w.Flush()
}

// Renewals lists rolled forward subscriptions.
func (p *Printer) Renewals(renewals []services.Renewal) error {
	if len(renewals) == 0 {
		p.Println(p.styles.Subtle.Render("All billing dates are current."))
		return nil
	}
	w := p.table("ID", "NAME", "FROM", "TO")
	for _, r := range renewals {
		row(w, r.ID, r.Name, core.FormatDate(r.From), core.FormatDate(r.To))
	}
	return w.Flush()
}

// Preferences shows the saved display settings.
func (p *Printer) Preferences(prefs services.Preferences) {
	p.Println(fmt.Sprintf("Name:  %s", prefs.DisplayName))
	p.Println(fmt.Sprintf("Theme: %s", prefs.Theme))
}

func (p *Printer) trend(s analytics.Series) error {
	peak := 0.0
	for _, v := range s.Floats() {
		if v > peak {
			peak = v
		}
	}
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	for i, label := range s.Labels {
		fraction := 0.0
		if peak > 0 {
			fraction = s.Values[i].Float64() / peak
		}
		row(w, label, p.styles.Bar(fraction, barWidth), core.FormatCurrency(s.Values[i]))
	}
	return w.Flush()
}

// DueIn describes how far a date lies from now in whole days.
func DueIn(now, due time.Time) string {
	days := int(due.Sub(now).Hours() / 24)
	switch {
	case days < 0:
		return "overdue"
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

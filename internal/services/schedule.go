package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"fintrack/internal/core"
)

// lastShortMonthDay is the last day every month has.
const lastShortMonthDay = 28

// RecurrenceOption returns the RFC 5545 recurrence of a subscription's
// charges, starting at anchor. Anchor days past the 28th list every day from
// the 28th up to the anchor day and keep the last one that exists, which
// clamps charges to the end of shorter months.
func RecurrenceOption(cycle core.Cycle, anchor time.Time) (rrule.ROption, error) {
	if !cycle.Valid() {
		return rrule.ROption{}, fmt.Errorf("%w: %s", core.ErrInvalidCycle, cycle)
	}

	opt := rrule.ROption{
		Freq:     rrule.MONTHLY,
		Interval: cycle.Months(),
		Dtstart:  anchor,
	}
	if cycle == core.Annual {
		opt.Freq = rrule.YEARLY
		opt.Interval = 1
		opt.Bymonth = []int{int(anchor.Month())}
	}

	day := anchor.Day()
	if day <= lastShortMonthDay {
		opt.Bymonthday = []int{day}
		return opt, nil
	}
	for d := lastShortMonthDay; d <= day; d++ {
		opt.Bymonthday = append(opt.Bymonthday, d)
	}
	opt.Bysetpos = []int{-1}
	return opt, nil
}

// RecurrenceRule renders the RRULE of s, anchored like RollForward anchors it.
func RecurrenceRule(s core.Subscription) (string, error) {
	stepper, err := GetCycleStepper(s.Cycle)
	if err != nil {
		return "", err
	}
	anchor := scheduleAnchor(stepper, s)
	opt, err := RecurrenceOption(s.Cycle, anchor.Truncate(time.Second))
	if err != nil {
		return "", err
	}
	return opt.RRuleString(), nil
}

// ChargeSchedule lists the next n charges of s, starting with its stored next
// billing date.
func ChargeSchedule(s core.Subscription, n int) ([]time.Time, error) {
	if n <= 0 {
		return nil, nil
	}
	stepper, err := GetCycleStepper(s.Cycle)
	if err != nil {
		return nil, err
	}
	// Recurrences run at whole seconds. The fraction is put back on every
	// charge so stored millisecond timestamps come out unchanged.
	anchor := scheduleAnchor(stepper, s)
	frac := anchor.Sub(anchor.Truncate(time.Second))
	opt, err := RecurrenceOption(s.Cycle, anchor.Add(-frac))
	if err != nil {
		return nil, err
	}
	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("build recurrence for %q: %w", s.ID, err)
	}

	first := s.NextBillingDate.Time
	charges := make([]time.Time, 0, n)
	next := rule.Iterator()
	for len(charges) < n {
		t, ok := next()
		if !ok {
			break
		}
		t = t.Add(frac)
		if t.Before(first) {
			continue
		}
		charges = append(charges, t)
	}
	return charges, nil
}

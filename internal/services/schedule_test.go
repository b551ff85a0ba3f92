package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
)

func TestChargeSchedule_ClampsToMonthEnd(t *testing.T) {
	s := sub("a", core.Monthly, core.NewDate(2024, 1, 31), core.NewDate(2024, 2, 29))

	charges, err := ChargeSchedule(s, 4)
	require.NoError(t, err)
	want := []time.Time{
		day(2024, time.February, 29),
		day(2024, time.March, 31),
		day(2024, time.April, 30),
		day(2024, time.May, 31),
	}
	require.Len(t, charges, len(want))
	for i := range want {
		assertInstant(t, want[i], charges[i])
	}
}

func TestChargeSchedule_MatchesStepper(t *testing.T) {
	tests := []struct {
		name  string
		cycle core.Cycle
		start core.Date
	}{
		{"monthly mid month", core.Monthly, core.NewDate(2024, 1, 15)},
		{"monthly thirtieth", core.Monthly, core.NewDate(2023, 12, 30)},
		{"quarterly month end", core.Quarterly, core.NewDate(2023, 11, 30)},
		{"annual leap day", core.Annual, core.NewDate(2024, 2, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stepper, err := GetCycleStepper(tt.cycle)
			require.NoError(t, err)
			s := sub("a", tt.cycle, tt.start, core.Date{Time: stepper.Next(tt.start.Time)})

			charges, err := ChargeSchedule(s, 6)
			require.NoError(t, err)
			require.Len(t, charges, 6)
			for k, got := range charges {
				want := core.AddMonthsClamped(tt.start.Time, (k+1)*tt.cycle.Months())
				assertInstant(t, want, got, "charge %d", k)
			}
		})
	}
}

func TestChargeSchedule_KeepsMilliseconds(t *testing.T) {
	start := time.Date(2024, time.January, 15, 10, 20, 30, 456_000_000, time.UTC)
	s := sub("a", core.Monthly, core.Date{Time: start}, core.Date{Time: core.NextBillingDate(start, core.Monthly)})

	charges, err := ChargeSchedule(s, 3)
	require.NoError(t, err)
	want := []time.Time{
		time.Date(2024, time.February, 15, 10, 20, 30, 456_000_000, time.UTC),
		time.Date(2024, time.March, 15, 10, 20, 30, 456_000_000, time.UTC),
		time.Date(2024, time.April, 15, 10, 20, 30, 456_000_000, time.UTC),
	}
	require.Len(t, charges, len(want))
	for i := range want {
		assertInstant(t, want[i], charges[i], "charge %d", i)
	}

	rule, err := RecurrenceRule(s)
	require.NoError(t, err)
	assert.Contains(t, rule, "FREQ=MONTHLY")
}

func TestChargeSchedule_OffScheduleAnchor(t *testing.T) {
	s := sub("a", core.Monthly, core.NewDate(2024, 1, 10), core.NewDate(2024, 3, 5))

	charges, err := ChargeSchedule(s, 2)
	require.NoError(t, err)
	require.Len(t, charges, 2)
	assertInstant(t, day(2024, time.March, 5), charges[0])
	assertInstant(t, day(2024, time.April, 5), charges[1])
}

func TestChargeSchedule_Errors(t *testing.T) {
	charges, err := ChargeSchedule(sub("a", core.Monthly, core.NewDate(2024, 1, 1), core.NewDate(2024, 2, 1)), 0)
	assert.NoError(t, err)
	assert.Empty(t, charges)

	_, err = ChargeSchedule(sub("a", "Weekly", core.NewDate(2024, 1, 1), core.NewDate(2024, 2, 1)), 3)
	assert.ErrorIs(t, err, core.ErrInvalidCycle)
}

func TestRecurrenceRule(t *testing.T) {
	rule, err := RecurrenceRule(sub("a", core.Quarterly, core.NewDate(2023, 11, 30), core.NewDate(2024, 2, 29)))
	require.NoError(t, err)
	assert.Contains(t, rule, "FREQ=MONTHLY")
	assert.Contains(t, rule, "INTERVAL=3")
	assert.Contains(t, rule, "BYSETPOS=-1")
	assert.Contains(t, rule, "BYMONTHDAY=28,29,30")

	rule, err = RecurrenceRule(sub("b", core.Annual, core.NewDate(2024, 6, 1), core.NewDate(2025, 6, 1)))
	require.NoError(t, err)
	assert.Contains(t, rule, "FREQ=YEARLY")
	assert.Contains(t, rule, "BYMONTH=6")
	assert.NotContains(t, rule, "BYSETPOS")
}

// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for subscription billing cycles.
// Each cycle (monthly, quarterly, annual) has a stepper that knows how to
// move a billing date forward on the calendar.

package services

import (
	"fmt"
	"time"

	"fintrack/internal/core"
)

// CycleStepper is the strategy interface for calendar stepping of a billing cycle.
type CycleStepper interface {
	// Next returns the charge one cycle after from.
	Next(from time.Time) time.Time
	// Advance returns the first charge strictly after now on the schedule
	// anchored at anchor. Charges are counted as whole cycles from the anchor,
	// so month-end clamping in one step never shifts later ones.
	Advance(anchor, now time.Time) time.Time
}

// monthStepper steps by a fixed number of calendar months.
type monthStepper struct {
	months int
}

func (s monthStepper) Next(from time.Time) time.Time {
	return core.AddMonthsClamped(from, s.months)
}

func (s monthStepper) Advance(anchor, now time.Time) time.Time {
	// Jump close to now instead of walking from a possibly old anchor.
	elapsed := (now.Year()-anchor.Year())*12 + int(now.Month()) - int(anchor.Month())
	k := elapsed/s.months - 1
	if k < 1 {
		k = 1
	}
	for {
		next := core.AddMonthsClamped(anchor, k*s.months)
		if next.After(now) {
			return next
		}
		k++
	}
}

// cycleSteppers maps billing cycles to their steppers.
var cycleSteppers = map[core.Cycle]CycleStepper{
	core.Monthly:   monthStepper{months: 1},
	core.Quarterly: monthStepper{months: 3},
	core.Annual:    monthStepper{months: 12},
}

// GetCycleStepper returns the stepper for a billing cycle.
// Returns an error if the cycle is not supported.
func GetCycleStepper(cycle core.Cycle) (CycleStepper, error) {
	stepper, ok := cycleSteppers[cycle]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidCycle, cycle)
	}
	return stepper, nil
}

// RegisterCycleStepper installs or replaces the stepper of a cycle.
func RegisterCycleStepper(cycle core.Cycle, stepper CycleStepper) {
	cycleSteppers[cycle] = stepper
}

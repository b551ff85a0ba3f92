package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Renewal records one subscription whose next billing date was moved.
type Renewal struct {
	ID   string
	Name string
	From time.Time
	To   time.Time
}

// RenewalProcessor moves lapsed next billing dates forward. It only runs when
// the user asks for it; nothing in the ledger advances dates on its own.
type RenewalProcessor struct {
	store  Collections
	logger *log.Logger
}

func NewRenewalProcessor(store Collections, logger *log.Logger) *RenewalProcessor {
	if logger == nil {
		logger = log.Discard()
	}
	return &RenewalProcessor{store: store, logger: logger.WithComponent(log.ComponentRenewal)}
}

// Preview lists the renewals RollForward would apply at now, without writing.
func (p *RenewalProcessor) Preview(ctx context.Context, now time.Time) ([]Renewal, error) {
	_, renewals, err := p.plan(p.store.Subscriptions(ctx), now)
	return renewals, err
}

// RollForward sets every subscription billed at or before now to its first
// charge strictly after now and writes the collection back once. Nothing is
// written when no subscription has lapsed.
func (p *RenewalProcessor) RollForward(ctx context.Context, now time.Time) ([]Renewal, error) {
	subs := p.store.Subscriptions(ctx)
	updated, renewals, err := p.plan(subs, now)
	if err != nil {
		return nil, err
	}
	if len(renewals) == 0 {
		p.logger.DebugContext(ctx, "No lapsed subscriptions", log.FieldCount, len(subs))
		return nil, nil
	}

	if err := p.store.ReplaceSubscriptions(ctx, updated); err != nil {
		return nil, fmt.Errorf("roll forward: %w", err)
	}

	for _, r := range renewals {
		p.logger.InfoContext(ctx, "Subscription rolled forward",
			log.FieldOperation, log.OpRenew,
			log.FieldRecordID, r.ID,
			"from", r.From.Format("2006-01-02"),
			log.FieldNextBill, r.To.Format("2006-01-02"))
	}
	return renewals, nil
}

func (p *RenewalProcessor) plan(subs []core.Subscription, now time.Time) ([]core.Subscription, []Renewal, error) {
	updated := make([]core.Subscription, len(subs))
	copy(updated, subs)

	var renewals []Renewal
	for i, s := range updated {
		if s.NextBillingDate.After(now) {
			continue
		}
		stepper, err := GetCycleStepper(s.Cycle)
		if err != nil {
			return nil, nil, fmt.Errorf("subscription %q: %w", s.ID, err)
		}

		next := stepper.Advance(scheduleAnchor(stepper, s), now)
		renewals = append(renewals, Renewal{ID: s.ID, Name: s.Name, From: s.NextBillingDate.Time, To: next})
		updated[i].NextBillingDate = core.Date{Time: next}
	}
	return updated, renewals, nil
}

// scheduleAnchor keeps the start date as anchor while the stored next billing
// date still lies on its schedule, so a Jan 31 start keeps billing on month
// ends. A hand-edited date that left the schedule becomes the new anchor.
func scheduleAnchor(stepper CycleStepper, s core.Subscription) time.Time {
	start, next := s.StartDate.Time, s.NextBillingDate.Time
	if start.IsZero() || !start.Before(next) {
		return next
	}
	if stepper.Advance(start, next.Add(-time.Nanosecond)).Equal(next) {
		return start
	}
	return next
}

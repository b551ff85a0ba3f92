package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

var (
	// ErrNotFound is returned when an update targets an id that is not stored.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when an add reuses a stored id.
	ErrDuplicateID = errors.New("duplicate id")
)

// Collections is the persistence the ledger reads and rewrites. Loads never
// fail; writes report storage.ErrWriteFailure.
type Collections interface {
	Expenses(ctx context.Context) []core.Expense
	ReplaceExpenses(ctx context.Context, expenses []core.Expense) error
	Subscriptions(ctx context.Context) []core.Subscription
	ReplaceSubscriptions(ctx context.Context, subs []core.Subscription) error
	Budget(ctx context.Context) *core.Budget
	SaveBudget(ctx context.Context, b core.Budget) error
	Clear(ctx context.Context) error
}

// Ledger orchestrates changes to the expense, subscription and budget
// collections. Every mutation loads the whole collection, edits a copy and
// writes it back. Callers must not run mutations concurrently.
type Ledger struct {
	store  Collections
	logger *log.Logger
}

func NewLedger(store Collections, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.Discard()
	}
	return &Ledger{store: store, logger: logger.WithComponent(log.ComponentLedger)}
}

// ListExpenses returns the stored expenses in storage order.
func (l *Ledger) ListExpenses(ctx context.Context) []core.Expense {
	expenses := l.store.Expenses(ctx)
	l.logger.DebugContext(ctx, "Expenses listed", log.FieldOperation, log.OpList, log.FieldCount, len(expenses))
	return expenses
}

// GetExpense returns the expense with the given id.
func (l *Ledger) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	for _, e := range l.store.Expenses(ctx) {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, l.missing(ctx, log.OpRead, id, fmt.Errorf("expense %q: %w", id, ErrNotFound))
}

// AddExpense assigns an id when missing, validates and appends e.
func (l *Ledger) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if strings.TrimSpace(e.ID) == "" {
		e.ID = core.NewID()
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, l.rejected(ctx, log.OpCreate, fmt.Errorf("validate expense: %w", err))
	}

	expenses := l.store.Expenses(ctx)
	if indexOf(expenses, e.ID, expenseID) >= 0 {
		return core.Expense{}, fmt.Errorf("expense %q: %w", e.ID, ErrDuplicateID)
	}
	expenses = append(expenses, e)
	if err := l.store.ReplaceExpenses(ctx, expenses); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	l.logger.InfoContext(ctx, "Expense added",
		log.FieldOperation, log.OpCreate,
		log.FieldRecordID, e.ID,
		log.FieldCategory, e.Category,
		log.FieldAmount, e.Amount.String())
	return e, nil
}

// UpdateExpense replaces the stored expense that has e's id.
func (l *Ledger) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return l.rejected(ctx, log.OpUpdate, fmt.Errorf("validate expense: %w", err))
	}

	expenses := l.store.Expenses(ctx)
	i := indexOf(expenses, e.ID, expenseID)
	if i < 0 {
		return l.missing(ctx, log.OpUpdate, e.ID, fmt.Errorf("expense %q: %w", e.ID, ErrNotFound))
	}
	expenses[i] = e
	if err := l.store.ReplaceExpenses(ctx, expenses); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	l.logger.InfoContext(ctx, "Expense updated", log.FieldOperation, log.OpUpdate, log.FieldRecordID, e.ID)
	return nil
}

// DeleteExpense removes the expense with id. Unknown ids are a no-op.
func (l *Ledger) DeleteExpense(ctx context.Context, id string) error {
	expenses := l.store.Expenses(ctx)
	kept, removed := without(expenses, id, expenseID)
	if !removed {
		return nil
	}
	if err := l.store.ReplaceExpenses(ctx, kept); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	l.logger.InfoContext(ctx, "Expense deleted", log.FieldOperation, log.OpDelete, log.FieldRecordID, id)
	return nil
}

// ListSubscriptions returns the stored subscriptions in storage order.
func (l *Ledger) ListSubscriptions(ctx context.Context) []core.Subscription {
	subs := l.store.Subscriptions(ctx)
	l.logger.DebugContext(ctx, "Subscriptions listed", log.FieldOperation, log.OpList, log.FieldCount, len(subs))
	return subs
}

// GetSubscription returns the subscription with the given id.
func (l *Ledger) GetSubscription(ctx context.Context, id string) (core.Subscription, error) {
	for _, s := range l.store.Subscriptions(ctx) {
		if s.ID == id {
			return s, nil
		}
	}
	return core.Subscription{}, l.missing(ctx, log.OpRead, id, fmt.Errorf("subscription %q: %w", id, ErrNotFound))
}

// AddSubscription assigns an id when missing, derives the first billing date
// from the start date when unset, validates and appends s.
func (l *Ledger) AddSubscription(ctx context.Context, s core.Subscription) (core.Subscription, error) {
	if strings.TrimSpace(s.ID) == "" {
		s.ID = core.NewID()
	}
	s.Service = core.NormalizeService(s.Service)
	if s.NextBillingDate.IsZero() && !s.StartDate.IsZero() {
		stepper, err := GetCycleStepper(s.Cycle)
		if err != nil {
			return core.Subscription{}, l.rejected(ctx, log.OpCreate, fmt.Errorf("validate subscription: %w", err))
		}
		s.NextBillingDate = core.Date{Time: stepper.Next(s.StartDate.Time)}
	}
	if err := s.Validate(); err != nil {
		return core.Subscription{}, l.rejected(ctx, log.OpCreate, fmt.Errorf("validate subscription: %w", err))
	}

	subs := l.store.Subscriptions(ctx)
	if indexOf(subs, s.ID, subscriptionID) >= 0 {
		return core.Subscription{}, fmt.Errorf("subscription %q: %w", s.ID, ErrDuplicateID)
	}
	subs = append(subs, s)
	if err := l.store.ReplaceSubscriptions(ctx, subs); err != nil {
		return core.Subscription{}, fmt.Errorf("save subscription: %w", err)
	}

	l.logger.InfoContext(ctx, "Subscription added",
		log.FieldOperation, log.OpCreate,
		log.FieldRecordID, s.ID,
		log.FieldCycle, s.Cycle,
		log.FieldNextBill, s.NextBillingDate.Format("2006-01-02"))
	return s, nil
}

// UpdateSubscription replaces the stored subscription that has s's id. The
// next billing date is stored as given and never recomputed.
func (l *Ledger) UpdateSubscription(ctx context.Context, s core.Subscription) error {
	s.Service = core.NormalizeService(s.Service)
	if err := s.Validate(); err != nil {
		return l.rejected(ctx, log.OpUpdate, fmt.Errorf("validate subscription: %w", err))
	}

	subs := l.store.Subscriptions(ctx)
	i := indexOf(subs, s.ID, subscriptionID)
	if i < 0 {
		return l.missing(ctx, log.OpUpdate, s.ID, fmt.Errorf("subscription %q: %w", s.ID, ErrNotFound))
	}
	subs[i] = s
	if err := l.store.ReplaceSubscriptions(ctx, subs); err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	l.logger.InfoContext(ctx, "Subscription updated", log.FieldOperation, log.OpUpdate, log.FieldRecordID, s.ID)
	return nil
}

// DeleteSubscription removes the subscription with id. Unknown ids are a no-op.
func (l *Ledger) DeleteSubscription(ctx context.Context, id string) error {
	subs := l.store.Subscriptions(ctx)
	kept, removed := without(subs, id, subscriptionID)
	if !removed {
		return nil
	}
	if err := l.store.ReplaceSubscriptions(ctx, kept); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}

	l.logger.InfoContext(ctx, "Subscription deleted", log.FieldOperation, log.OpDelete, log.FieldRecordID, id)
	return nil
}

// GetBudget returns the saved budget or nil.
func (l *Ledger) GetBudget(ctx context.Context) *core.Budget {
	return l.store.Budget(ctx)
}

// SaveBudget validates and replaces the budget. Over-allocation is allowed.
func (l *Ledger) SaveBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return l.rejected(ctx, log.OpUpdate, fmt.Errorf("validate budget: %w", err))
	}
	if err := l.store.SaveBudget(ctx, b); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	l.logger.InfoContext(ctx, "Budget saved", log.FieldOperation, log.OpUpdate, log.FieldAmount, b.Total.String())
	return nil
}

// Snapshot loads all three collections.
func (l *Ledger) Snapshot(ctx context.Context) core.Snapshot {
	return core.Snapshot{
		Expenses:      l.store.Expenses(ctx),
		Subscriptions: l.store.Subscriptions(ctx),
		Budget:        l.store.Budget(ctx),
	}
}

// Reset erases every expense, subscription and the budget.
func (l *Ledger) Reset(ctx context.Context) error {
	if err := l.store.Clear(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	l.logger.WarnContext(ctx, "All financial data erased", log.FieldOperation, log.OpClear)
	return nil
}

func expenseID(e core.Expense) string           { return e.ID }
func subscriptionID(s core.Subscription) string { return s.ID }

func indexOf[T any](items []T, id string, key func(T) string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}

// without returns items minus every element with id, and whether any matched.
func without[T any](items []T, id string, key func(T) string) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out, len(out) != len(items)
}

func (l *Ledger) rejected(ctx context.Context, op string, err error) error {
	l.logger.WarnContext(ctx, "Rejected invalid record",
		log.NewFields().WithOperation(op).WithErrorType(log.ErrorTypeValidation).WithError(err).ToSlice()...)
	return err
}

func (l *Ledger) missing(ctx context.Context, op, id string, err error) error {
	l.logger.DebugContext(ctx, "Record not found",
		log.NewFields().WithOperation(op).WithRecord(id).WithErrorType(log.ErrorTypeNotFound).ToSlice()...)
	return err
}

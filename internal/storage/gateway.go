package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

const (
	collectionExpenses      = "expenses"
	collectionSubscriptions = "subscriptions"
	collectionBudget        = "budget"
	collectionPreference    = "preference"
)

// Gateway loads and replaces whole collections. Loads never fail: unreadable
// documents are logged and treated as absent. A document that cannot be
// decoded is first copied to its BackupKey, so the next replace does not lose
// it. Writes report ErrWriteFailure.
//
// There is no locking. Two concurrent read-modify-write cycles on the same
// collection resolve as last writer wins.
type Gateway struct {
	kv     KV
	logger *log.Logger
}

func NewGateway(kv KV, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.Discard()
	}
	return &Gateway{kv: kv, logger: logger.WithComponent(log.ComponentStorage)}
}

// Expenses returns every stored expense, or an empty slice.
func (g *Gateway) Expenses(ctx context.Context) []core.Expense {
	return loadList[core.Expense](ctx, g, collectionExpenses, ExpensesKey)
}

// ReplaceExpenses overwrites the expense collection.
func (g *Gateway) ReplaceExpenses(ctx context.Context, expenses []core.Expense) error {
	return saveList(ctx, g, collectionExpenses, ExpensesKey, expenses)
}

// Subscriptions returns every stored subscription, or an empty slice.
func (g *Gateway) Subscriptions(ctx context.Context) []core.Subscription {
	return loadList[core.Subscription](ctx, g, collectionSubscriptions, SubscriptionsKey)
}

// ReplaceSubscriptions overwrites the subscription collection.
func (g *Gateway) ReplaceSubscriptions(ctx context.Context, subs []core.Subscription) error {
	return saveList(ctx, g, collectionSubscriptions, SubscriptionsKey, subs)
}

// Budget returns the saved budget, or nil when none is stored.
func (g *Gateway) Budget(ctx context.Context) *core.Budget {
	var b *core.Budget
	if err := g.read(ctx, BudgetKey, &b); err != nil {
		g.warnRead(ctx, collectionBudget, BudgetKey, err)
		return nil
	}
	return b
}

// SaveBudget replaces the singleton budget.
func (g *Gateway) SaveBudget(ctx context.Context, b core.Budget) error {
	return g.write(ctx, collectionBudget, BudgetKey, b)
}

// Clear removes the three financial collections. Preferences are kept.
func (g *Gateway) Clear(ctx context.Context) error {
	keys := []string{ExpensesKey, SubscriptionsKey, BudgetKey}
	if err := g.kv.Remove(ctx, keys...); err != nil {
		g.logger.ErrorContext(ctx, "Failed to clear collections",
			log.NewFields().WithOperation(log.OpClear).WithError(err).ToSlice()...)
		return fmt.Errorf("%w: clear: %w", ErrWriteFailure, err)
	}
	g.logger.InfoContext(ctx, "Collections cleared", log.FieldOperation, log.OpClear)
	return nil
}

// Preference returns a stored plain-text preference. Missing or unreadable
// values report false.
func (g *Gateway) Preference(ctx context.Context, key string) (string, bool) {
	raw, ok, err := g.kv.Get(ctx, key)
	if err != nil {
		g.warnRead(ctx, collectionPreference, key, fmt.Errorf("%w: %w", ErrReadFailure, err))
		return "", false
	}
	if !ok {
		return "", false
	}
	return string(raw), true
}

// SetPreference stores a plain-text preference.
func (g *Gateway) SetPreference(ctx context.Context, key, value string) error {
	if err := g.kv.Set(ctx, key, []byte(value)); err != nil {
		g.errorWrite(ctx, collectionPreference, key, err)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailure, key, err)
	}
	return nil
}

func loadList[T any](ctx context.Context, g *Gateway, name, key string) []T {
	var out []T
	if err := g.read(ctx, key, &out); err != nil {
		g.warnRead(ctx, name, key, err)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	g.logger.DebugContext(ctx, "Collection loaded",
		log.NewFields().WithOperation(log.OpRead).WithCollection(name, key).WithCount(len(out)).ToSlice()...)
	return out
}

func saveList[T any](ctx context.Context, g *Gateway, name, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	return g.write(ctx, name, key, records)
}

// read decodes the document at key into dst, leaving dst untouched when the
// key is absent.
func (g *Gateway) read(ctx context.Context, key string, dst any) error {
	raw, ok, err := g.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: get %s: %w", ErrReadFailure, key, err)
	}
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		g.backup(ctx, key, raw)
		return fmt.Errorf("%w: decode %s: %w", ErrReadFailure, key, err)
	}
	return nil
}

// backup copies raw to the backup key unless the same bytes are already there.
func (g *Gateway) backup(ctx context.Context, key string, raw []byte) {
	bkey := BackupKey(key)
	if prev, ok, err := g.kv.Get(ctx, bkey); err == nil && ok && bytes.Equal(prev, raw) {
		return
	}
	if err := g.kv.Set(ctx, bkey, raw); err != nil {
		g.logger.ErrorContext(ctx, "Failed to back up unreadable document",
			log.NewFields().WithOperation(log.OpRead).WithErrorType(log.ErrorTypeDatabase).WithError(err).ToSlice()...)
		return
	}
	g.logger.WarnContext(ctx, "Backed up unreadable document",
		log.FieldOperation, log.OpRead,
		log.FieldKey, bkey,
		log.FieldBytes, len(raw))
}

func (g *Gateway) write(ctx context.Context, name, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWriteFailure, name, err)
	}
	if err := g.kv.Set(ctx, key, raw); err != nil {
		g.errorWrite(ctx, name, key, err)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailure, name, err)
	}
	g.logger.DebugContext(ctx, "Collection written",
		log.NewFields().WithOperation(log.OpReplace).WithCollection(name, key).ToSlice()...)
	return nil
}

func (g *Gateway) warnRead(ctx context.Context, name, key string, err error) {
	g.logger.WarnContext(ctx, "Unreadable collection, using empty value",
		log.NewFields().
			WithOperation(log.OpRead).
			WithCollection(name, key).
			WithErrorType(log.ErrorTypeDecode).
			WithError(err).
			ToSlice()...)
}

func (g *Gateway) errorWrite(ctx context.Context, name, key string, err error) {
	g.logger.ErrorContext(ctx, "Failed to write collection",
		log.NewFields().
			WithOperation(log.OpReplace).
			WithCollection(name, key).
			WithErrorType(log.ErrorTypeDatabase).
			WithError(err).
			ToSlice()...)
}

package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
	"fintrack/internal/storage/memory"
)

var errDiskFull = errors.New("disk full")

// failingKV reads from an in-memory store but rejects every write.
type failingKV struct {
	*memory.Store
}

func (failingKV) Set(context.Context, string, []byte) error { return errDiskFull }
func (failingKV) Remove(context.Context, ...string) error   { return errDiskFull }

func newTestLedger(t *testing.T) (*Ledger, *storage.Gateway) {
	t.Helper()
	gw := storage.NewGateway(memory.New(), nil)
	return NewLedger(gw, nil), gw
}

func lunch() core.Expense {
	return core.Expense{
		Amount:      core.MoneyFromInt(12),
		Category:    core.Food,
		Date:        core.NewDate(2024, 1, 10),
		Description: "Lunch",
	}
}

func streaming() core.Subscription {
	return core.Subscription{
		Name:      "Netflix",
		Service:   " Netflix ",
		Amount:    core.MoneyFromInt(15),
		Cycle:     core.Monthly,
		StartDate: core.NewDate(2024, 1, 31),
		Category:  core.Entertainment,
	}
}

func TestLedger_AddExpenseAssignsID(t *testing.T) {
	ctx := context.Background()
	l, gw := newTestLedger(t)

	added, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	stored := gw.Expenses(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, added.ID, stored[0].ID)
	assert.True(t, stored[0].Amount.Equal(core.MoneyFromInt(12)))
}

func TestLedger_AddExpenseKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	for _, id := range []string{"a", "b", "c"} {
		e := lunch()
		e.ID = id
		_, err := l.AddExpense(ctx, e)
		require.NoError(t, err)
	}

	var ids []string
	for _, e := range l.ListExpenses(ctx) {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestLedger_AddExpenseRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	l, gw := newTestLedger(t)

	e := lunch()
	e.Amount = core.MoneyFromInt(-1)
	_, err := l.AddExpense(ctx, e)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	e = lunch()
	e.Description = "  "
	_, err = l.AddExpense(ctx, e)
	assert.ErrorIs(t, err, core.ErrEmptyDescription)

	assert.Empty(t, gw.Expenses(ctx))
}

func TestLedger_AddExpenseDuplicateID(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	e := lunch()
	e.ID = "dup"
	_, err := l.AddExpense(ctx, e)
	require.NoError(t, err)

	_, err = l.AddExpense(ctx, e)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, l.ListExpenses(ctx), 1)
}

func TestLedger_UpdateExpense(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	added, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)

	added.Description = "Dinner"
	added.Amount = core.MoneyFromInt(30)
	require.NoError(t, l.UpdateExpense(ctx, added))

	got, err := l.GetExpense(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dinner", got.Description)
	assert.True(t, got.Amount.Equal(core.MoneyFromInt(30)))
}

func TestLedger_UpdateUnknownExpense(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	e := lunch()
	e.ID = "missing"
	assert.ErrorIs(t, l.UpdateExpense(ctx, e), ErrNotFound)

	_, err := l.GetExpense(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedger_DeleteExpense(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	first, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)
	second, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)

	require.NoError(t, l.DeleteExpense(ctx, first.ID))
	remaining := l.ListExpenses(ctx)
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ID)

	assert.NoError(t, l.DeleteExpense(ctx, "unknown"), "unknown ids are a no-op")
	assert.Len(t, l.ListExpenses(ctx), 1)
}

func TestLedger_DeleteUnknownDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(storage.NewGateway(failingKV{memory.New()}, nil), nil)

	assert.NoError(t, l.DeleteExpense(ctx, "nope"))
	assert.NoError(t, l.DeleteSubscription(ctx, "nope"))
}

func TestLedger_WriteFailurePropagates(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(storage.NewGateway(failingKV{memory.New()}, nil), nil)

	_, err := l.AddExpense(ctx, lunch())
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrWriteFailure)
	assert.ErrorIs(t, err, errDiskFull)

	_, err = l.AddSubscription(ctx, streaming())
	assert.ErrorIs(t, err, storage.ErrWriteFailure)

	err = l.SaveBudget(ctx, core.Budget{Total: core.MoneyFromInt(100)})
	assert.ErrorIs(t, err, storage.ErrWriteFailure)

	assert.ErrorIs(t, l.Reset(ctx), storage.ErrWriteFailure)
}

func TestLedger_AddSubscriptionDerivesNextBilling(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	added, err := l.AddSubscription(ctx, streaming())
	require.NoError(t, err)

	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "netflix", added.Service)
	assert.Equal(t, core.NewDate(2024, 2, 29).Time, added.NextBillingDate.Time)

	got, err := l.GetSubscription(ctx, added.ID)
	require.NoError(t, err)
	assertInstant(t, added.NextBillingDate.Time, got.NextBillingDate.Time)
}

func TestLedger_AddSubscriptionKeepsExplicitNextBilling(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	s := streaming()
	s.NextBillingDate = core.NewDate(2024, 5, 1)
	added, err := l.AddSubscription(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, core.NewDate(2024, 5, 1).Time, added.NextBillingDate.Time)
}

func TestLedger_AddSubscriptionInvalidCycle(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	s := streaming()
	s.Cycle = "Weekly"
	_, err := l.AddSubscription(ctx, s)
	assert.ErrorIs(t, err, core.ErrInvalidCycle)
	assert.Empty(t, l.ListSubscriptions(ctx))
}

func TestLedger_UpdateSubscriptionNeverRecomputes(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	added, err := l.AddSubscription(ctx, streaming())
	require.NoError(t, err)

	added.Cycle = core.Annual
	added.StartDate = core.NewDate(2023, 6, 1)
	require.NoError(t, l.UpdateSubscription(ctx, added))

	got, err := l.GetSubscription(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, core.Annual, got.Cycle)
	assertInstant(t, core.NewDate(2024, 2, 29).Time, got.NextBillingDate.Time)

	added.ID = "missing"
	assert.ErrorIs(t, l.UpdateSubscription(ctx, added), ErrNotFound)
}

func TestLedger_DeleteSubscription(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	added, err := l.AddSubscription(ctx, streaming())
	require.NoError(t, err)
	require.NoError(t, l.DeleteSubscription(ctx, added.ID))
	assert.Empty(t, l.ListSubscriptions(ctx))
}

func TestLedger_Budget(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	assert.Nil(t, l.GetBudget(ctx))

	b := core.Budget{
		Total:      core.MoneyFromInt(100),
		Categories: map[core.Category]core.Money{core.Food: core.MoneyFromInt(80), core.Shopping: core.MoneyFromInt(50)},
	}
	require.NoError(t, l.SaveBudget(ctx, b), "over-allocation is allowed")

	got := l.GetBudget(ctx)
	require.NotNil(t, got)
	assert.True(t, got.Total.Equal(core.MoneyFromInt(100)))
	assert.True(t, got.Unallocated().Equal(core.MoneyFromInt(-30)))

	bad := core.Budget{Total: core.MoneyFromInt(-5)}
	assert.ErrorIs(t, l.SaveBudget(ctx, bad), core.ErrInvalidAmount)
}

func TestLedger_SnapshotAndReset(t *testing.T) {
	ctx := context.Background()
	l, gw := newTestLedger(t)

	_, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)
	_, err = l.AddSubscription(ctx, streaming())
	require.NoError(t, err)
	require.NoError(t, l.SaveBudget(ctx, core.Budget{Total: core.MoneyFromInt(500)}))
	require.NoError(t, gw.SetPreference(ctx, storage.ThemeKey, "dark"))

	snap := l.Snapshot(ctx)
	assert.Len(t, snap.Expenses, 1)
	assert.Len(t, snap.Subscriptions, 1)
	require.NotNil(t, snap.Budget)

	require.NoError(t, l.Reset(ctx))
	snap = l.Snapshot(ctx)
	assert.Empty(t, snap.Expenses)
	assert.Empty(t, snap.Subscriptions)
	assert.Nil(t, snap.Budget)

	theme, ok := gw.Preference(ctx, storage.ThemeKey)
	assert.True(t, ok, "reset keeps preferences")
	assert.Equal(t, "dark", theme)
}

func TestLedger_LogsRejectedAndMissingRecords(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelDebug, Format: log.FormatJSON, Output: &buf})
	l := NewLedger(storage.NewGateway(memory.New(), nil), logger)

	e := lunch()
	e.Description = ""
	_, err := l.AddExpense(ctx, e)
	require.ErrorIs(t, err, core.ErrEmptyDescription)
	assert.Contains(t, buf.String(), `"error_type":"validation_error"`)

	buf.Reset()
	_, err = l.GetSubscription(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, buf.String(), `"error_type":"not_found_error"`)
	assert.Contains(t, buf.String(), `"record_id":"nope"`)

	buf.Reset()
	l.ListExpenses(ctx)
	assert.Contains(t, buf.String(), `"operation":"list"`)
}

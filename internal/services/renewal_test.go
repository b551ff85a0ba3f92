package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/storage"
	"fintrack/internal/storage/memory"
)

func seedSubscriptions(t *testing.T, gw *storage.Gateway, subs ...core.Subscription) {
	t.Helper()
	require.NoError(t, gw.ReplaceSubscriptions(context.Background(), subs))
}

func sub(id string, cycle core.Cycle, start, next core.Date) core.Subscription {
	return core.Subscription{
		ID:              id,
		Name:            id,
		Amount:          core.MoneyFromInt(10),
		Cycle:           cycle,
		StartDate:       start,
		NextBillingDate: next,
		Category:        core.Entertainment,
	}
}

func TestRenewalProcessor_RollForward(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewGateway(memory.New(), nil)
	seedSubscriptions(t, gw,
		sub("month-end", core.Monthly, core.NewDate(2024, 1, 31), core.NewDate(2024, 2, 29)),
		sub("edited", core.Monthly, core.NewDate(2024, 1, 10), core.NewDate(2024, 3, 5)),
		sub("future", core.Annual, core.NewDate(2024, 1, 1), core.NewDate(2025, 1, 1)),
		sub("quarterly", core.Quarterly, core.NewDate(2023, 11, 30), core.NewDate(2024, 2, 29)),
	)

	p := NewRenewalProcessor(gw, nil)
	now := day(2024, time.April, 15)

	renewals, err := p.RollForward(ctx, now)
	require.NoError(t, err)
	require.Len(t, renewals, 3)

	want := map[string]time.Time{
		"month-end": day(2024, time.April, 30),
		"edited":    day(2024, time.May, 5),
		"future":    day(2025, time.January, 1),
		"quarterly": day(2024, time.May, 30),
	}
	for _, s := range gw.Subscriptions(ctx) {
		assertInstant(t, want[s.ID], s.NextBillingDate.Time, s.ID)
	}

	assert.Equal(t, "month-end", renewals[0].ID)
	assertInstant(t, day(2024, time.February, 29), renewals[0].From)
	assertInstant(t, day(2024, time.April, 30), renewals[0].To)
}

func TestRenewalProcessor_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewGateway(memory.New(), nil)
	seedSubscriptions(t, gw, sub("a", core.Monthly, core.NewDate(2024, 1, 15), core.NewDate(2024, 2, 15)))

	p := NewRenewalProcessor(gw, nil)
	now := day(2024, time.March, 20)

	first, err := p.RollForward(ctx, now)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := p.RollForward(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestRenewalProcessor_NothingLapsedDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	seed := storage.NewGateway(mem, nil)
	seedSubscriptions(t, seed, sub("a", core.Monthly, core.NewDate(2024, 1, 15), core.NewDate(2024, 2, 15)))

	p := NewRenewalProcessor(storage.NewGateway(failingKV{mem}, nil), nil)
	renewals, err := p.RollForward(ctx, day(2024, time.February, 1))
	assert.NoError(t, err)
	assert.Empty(t, renewals)
}

func TestRenewalProcessor_WriteFailure(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	seedSubscriptions(t, storage.NewGateway(mem, nil),
		sub("a", core.Monthly, core.NewDate(2024, 1, 15), core.NewDate(2024, 2, 15)))

	p := NewRenewalProcessor(storage.NewGateway(failingKV{mem}, nil), nil)
	_, err := p.RollForward(ctx, day(2024, time.March, 1))
	assert.ErrorIs(t, err, storage.ErrWriteFailure)
}

func TestRenewalProcessor_Preview(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewGateway(memory.New(), nil)
	seedSubscriptions(t, gw, sub("a", core.Monthly, core.NewDate(2024, 1, 15), core.NewDate(2024, 2, 15)))

	p := NewRenewalProcessor(gw, nil)
	renewals, err := p.Preview(ctx, day(2024, time.March, 1))
	require.NoError(t, err)
	require.Len(t, renewals, 1)
	assertInstant(t, day(2024, time.March, 15), renewals[0].To)

	stored := gw.Subscriptions(ctx)
	assertInstant(t, day(2024, time.February, 15), stored[0].NextBillingDate.Time, "preview must not write")
}

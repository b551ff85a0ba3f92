// Package storage persists the financial collections as whole JSON documents
// in a string-keyed key-value store.
package storage

import (
	"context"
	"errors"
)

// Keys of the persisted documents.
const (
	ExpensesKey      = "@expense_tracker_expenses"
	SubscriptionsKey = "@expense_tracker_subscriptions"
	BudgetKey        = "@expense_tracker_budget"
	ThemeKey         = "@expense_tracker_theme"
	UserNameKey      = "@expense_tracker_user_name"
)

// backupSuffix marks the copy of a document that failed to decode.
const backupSuffix = ".unreadable"

// BackupKey is where the gateway keeps the last undecodable document stored
// at key. Clear leaves backups in place.
func BackupKey(key string) string {
	return key + backupSuffix
}

var (
	// ErrReadFailure marks a document that could not be read or decoded.
	// Gateway loads recover from it; it is only seen in logs.
	ErrReadFailure = errors.New("storage read failure")
	// ErrWriteFailure marks a document that could not be written. The prior
	// value is left in place.
	ErrWriteFailure = errors.New("storage write failure")
)

// KV is the key-value store port. Implementations must make each Set atomic
// for its key; nothing else is required.
type KV interface {
	// Get returns the stored value. A missing key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes every listed key. Missing keys are ignored.
	Remove(ctx context.Context, keys ...string) error
	Close() error
}

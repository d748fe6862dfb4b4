package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Storage keys of the two persisted collections
const (
	TransactionsKey = "finance-app-transactions"
	GoalsKey        = "finance-app-goals"
)

// Persisted amounts are plain JSON numbers, as in the stored layout
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// KeyValueStore defines the persistence port of the record store.
// Each collection is stored whole under a single key.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// found is false when the key has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set replaces the value stored under key
	Set(ctx context.Context, key string, value []byte) error
}

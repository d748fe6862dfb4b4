package noop

import (
	"context"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

// Store stands in when no persistent storage is available.
// Every operation fails with domain.ErrStorageUnavailable.
type Store struct{}

// NewStore creates an unavailable store
func NewStore() Store {
	return Store{}
}

func (Store) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, domain.ErrStorageUnavailable
}

func (Store) Set(context.Context, string, []byte) error {
	return domain.ErrStorageUnavailable
}

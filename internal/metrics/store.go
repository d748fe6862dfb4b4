package metrics

import (
	"context"
	"time"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

// InstrumentedStore reports every Get and Set of the wrapped store to a Collector
type InstrumentedStore struct {
	next      domain.KeyValueStore
	backend   string
	collector Collector
}

// Instrument wraps store so that its operations are recorded under the backend label
func Instrument(store domain.KeyValueStore, backend string, collector Collector) *InstrumentedStore {
	if collector == nil {
		collector = NoOpCollector{}
	}
	return &InstrumentedStore{next: store, backend: backend, collector: collector}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	value, found, err := s.next.Get(ctx, key)
	s.collector.RecordStorageOp(s.backend, "get", err, time.Since(start))
	return value, found, err
}

func (s *InstrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.collector.RecordStorageOp(s.backend, "set", err, time.Since(start))
	return err
}

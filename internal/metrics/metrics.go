package metrics

import (
	"time"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

// CircuitState represents the state of a storage circuit breaker
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// Collector receives measurements from the storage layer and the record store
type Collector interface {
	// RecordStorageOp records one Get or Set against a backend
	RecordStorageOp(backend, operation string, err error, duration time.Duration)

	// RecordCircuitState records a circuit breaker transition
	RecordCircuitState(backend string, state CircuitState)

	// RecordMutation records the outcome of a record store mutation
	RecordMutation(entity, operation string, result domain.MutationResult)
}

// NoOpCollector discards every measurement
type NoOpCollector struct{}

func (NoOpCollector) RecordStorageOp(string, string, error, time.Duration) {}
func (NoOpCollector) RecordCircuitState(string, CircuitState) {}
func (NoOpCollector) RecordMutation(string, string, domain.MutationResult) {}

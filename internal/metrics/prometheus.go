package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

// PrometheusCollector implements Collector for Prometheus
type PrometheusCollector struct {
	storageOps      *prometheus.CounterVec
	storageLatency  *prometheus.HistogramVec
	circuitState    *prometheus.GaugeVec
	recordMutations *prometheus.CounterVec
}

// NewPrometheusCollector creates a new Prometheus metrics collector
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		storageOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "storage_operations_total",
				Help:      "Total number of key-value storage operations per backend, operation and outcome",
			},
			[]string{"backend", "operation", "outcome"},
		),
		storageLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "storage_operation_duration_seconds",
				Help:      "Latency of key-value storage operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"backend", "operation"},
		),
		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "storage_circuit_state",
				Help:      "Current circuit breaker state per backend (0=closed, 1=open, 2=half-open)",
			},
			[]string{"backend"},
		),
		recordMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "record_mutations_total",
				Help:      "Total number of record store mutations per entity, operation and result",
			},
			[]string{"entity", "operation", "result"},
		),
	}
}

// Register registers every metric with reg
func (pc *PrometheusCollector) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		pc.storageOps,
		pc.storageLatency,
		pc.circuitState,
		pc.recordMutations,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (pc *PrometheusCollector) RecordStorageOp(backend, operation string, err error, duration time.Duration) {
	pc.storageOps.WithLabelValues(backend, operation, outcome(err)).Inc()
	pc.storageLatency.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

func (pc *PrometheusCollector) RecordCircuitState(backend string, state CircuitState) {
	pc.circuitState.WithLabelValues(backend).Set(float64(state))
}

func (pc *PrometheusCollector) RecordMutation(entity, operation string, result domain.MutationResult) {
	pc.recordMutations.WithLabelValues(entity, operation, result.String()).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

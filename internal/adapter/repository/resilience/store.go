package resilience

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/logging"
	"github.com/simaogato/fintrack-backend/internal/metrics"
)

// Config configures the circuit breaker and timeout around a remote backend
type Config struct {
	// Timeout bounds every Get and Set. Zero disables it.
	Timeout time.Duration
	// MaxRequests allowed through while half-open
	MaxRequests uint32
	// Interval after which closed-state counts are cleared
	Interval time.Duration
	// OpenTimeout is how long the breaker stays open before probing
	OpenTimeout time.Duration
	// ConsecutiveFailures trips the breaker
	ConsecutiveFailures uint32
}

// DefaultConfig returns sensible defaults for a remote key-value backend
func DefaultConfig() Config {
	return Config{
		Timeout:             3 * time.Second,
		MaxRequests:         1,
		Interval:            60 * time.Second,
		OpenTimeout:         30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// Store wraps a KeyValueStore with a circuit breaker and per-call timeout.
// While the breaker is open, calls fail fast with domain.ErrStorageUnavailable.
type Store struct {
	next    domain.KeyValueStore
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
	logger  *logging.Logger
}

type getResult struct {
	value []byte
	found bool
}

// NewStore wraps next under the given backend name
func NewStore(next domain.KeyValueStore, name string, config Config, collector metrics.Collector, logger *logging.Logger) *Store {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	logger = logging.OrGlobal(logger).Named("resilience").With(zap.String("backend", name))

	threshold := config.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)

			var state metrics.CircuitState
			switch to {
			case gobreaker.StateOpen:
				state = metrics.CircuitOpen
			case gobreaker.StateHalfOpen:
				state = metrics.CircuitHalfOpen
			default:
				state = metrics.CircuitClosed
			}
			collector.RecordCircuitState(name, state)
		},
	}

	return &Store{
		next:    next,
		cb:      gobreaker.NewCircuitBreaker(settings),
		timeout: config.Timeout,
		logger:  logger,
	}
}

// State returns the current breaker state
func (s *Store) State() gobreaker.State {
	return s.cb.State()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.cb.Execute(func() (interface{}, error) {
		value, found, err := s.next.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		return getResult{value: value, found: found}, nil
	})
	if err != nil {
		return nil, false, s.translate("get", key, err)
	}

	r := result.(getResult)
	return r.value, r.found, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.next.Set(ctx, key, value)
	})
	if err != nil {
		return s.translate("set", key, err)
	}
	return nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

// translate maps breaker rejections, timeouts and connection failures to
// domain.ErrStorageUnavailable so callers see one outcome whether or not the
// breaker has tripped yet. Other errors pass through.
func (s *Store) translate(operation, key string, err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		s.logger.Warn("circuit breaker rejected request",
			zap.String("operation", operation),
			zap.String("key", key),
		)
		return fmt.Errorf("%s %s: %w", operation, key, domain.ErrStorageUnavailable)
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn("storage operation timed out",
			zap.String("operation", operation),
			zap.String("key", key),
			zap.Duration("timeout", s.timeout),
		)
		return fmt.Errorf("%s %s: %w: %w", operation, key, domain.ErrStorageUnavailable, err)
	case isConnectionError(err):
		s.logger.Warn("storage backend unreachable",
			zap.String("operation", operation),
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w: %w", operation, key, domain.ErrStorageUnavailable, err)
	}
	return err
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/logging"
)

const (
	entityTransaction = "transaction"
	entityGoal        = "goal"
)

// MutationObserver is notified of every mutation outcome
type MutationObserver interface {
	RecordMutation(entity, operation string, result domain.MutationResult)
}

type noopObserver struct{}

func (noopObserver) RecordMutation(string, string, domain.MutationResult) {}

// CreateTransactionInput represents the input for creating a transaction
type CreateTransactionInput struct {
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Category    string
	Description string
	Date        domain.Date
}

// CreateGoalInput represents the input for creating a goal
type CreateGoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	Deadline     domain.Date
}

// ContributionInput represents a contribution toward a goal
type ContributionInput struct {
	Amount decimal.Decimal
	Date   domain.Date
}

// Snapshot holds both collections read together
type Snapshot struct {
	Transactions []domain.Transaction
	Goals        []domain.Goal
}

// RecordStore persists transactions and goals as two whole JSON collections.
//
// Every mutation reads the full collection, changes it in memory and writes it
// back. Mutations through one RecordStore are serialized and a read never
// overlaps a write; two stores sharing a backend race and the last writer wins.
type RecordStore struct {
	Storage  domain.KeyValueStore
	Clock    func() time.Time
	NewID    func() string
	Observer MutationObserver

	logger *logging.Logger
	mu     sync.RWMutex
}

// NewRecordStore creates a new RecordStore instance
func NewRecordStore(storage domain.KeyValueStore, logger *logging.Logger) *RecordStore {
	return &RecordStore{
		Storage:  storage,
		Clock:    time.Now,
		NewID:    uuid.NewString,
		Observer: noopObserver{},
		logger:   logging.OrGlobal(logger).Named("records"),
	}
}

// ListTransactions returns all transactions in insertion order.
// Missing or unavailable storage yields an empty list.
func (s *RecordStore) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	if err := s.load(ctx, domain.TransactionsKey, &txns); err != nil {
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

// CreateTransaction validates the input, assigns ID and CreatedAt, and appends
// the transaction to the collection
func (s *RecordStore) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	tx := domain.Transaction{
		ID:          s.NewID(),
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
		CreatedAt:   s.Clock().UTC(),
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txns, err := loadForWrite[domain.Transaction](ctx, s, domain.TransactionsKey)
	if err != nil {
		return nil, err
	}
	txns = append(txns, tx)

	if err := s.save(ctx, domain.TransactionsKey, txns); err != nil {
		return nil, err
	}

	s.logger.Debug("transaction created",
		zap.String("id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.String("amount", tx.Amount.String()),
	)
	s.Observer.RecordMutation(entityTransaction, "create", domain.MutationApplied)
	return &tx, nil
}

// UpdateTransaction merges patch into the transaction with the given id.
// A missing id is not an error: the collection is left untouched and
// MutationNotFound is returned.
func (s *RecordStore) UpdateTransaction(ctx context.Context, id string, patch domain.TransactionPatch) (domain.MutationResult, error) {
	if err := patch.Validate(); err != nil {
		return domain.MutationNotFound, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txns, err := loadForWrite[domain.Transaction](ctx, s, domain.TransactionsKey)
	if err != nil {
		return domain.MutationNotFound, err
	}

	idx := indexOfTransaction(txns, id)
	if idx < 0 {
		return s.notFound(entityTransaction, "update", id), nil
	}
	patch.Apply(&txns[idx])

	if err := s.save(ctx, domain.TransactionsKey, txns); err != nil {
		return domain.MutationNotFound, err
	}

	s.logger.Debug("transaction updated", zap.String("id", id))
	s.Observer.RecordMutation(entityTransaction, "update", domain.MutationApplied)
	return domain.MutationApplied, nil
}

// DeleteTransaction permanently removes the transaction with the given id
func (s *RecordStore) DeleteTransaction(ctx context.Context, id string) (domain.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns, err := loadForWrite[domain.Transaction](ctx, s, domain.TransactionsKey)
	if err != nil {
		return domain.MutationNotFound, err
	}

	idx := indexOfTransaction(txns, id)
	if idx < 0 {
		return s.notFound(entityTransaction, "delete", id), nil
	}
	txns = append(txns[:idx], txns[idx+1:]...)

	if err := s.save(ctx, domain.TransactionsKey, txns); err != nil {
		return domain.MutationNotFound, err
	}

	s.logger.Debug("transaction deleted", zap.String("id", id))
	s.Observer.RecordMutation(entityTransaction, "delete", domain.MutationApplied)
	return domain.MutationApplied, nil
}

// ListGoals returns all goals in insertion order
func (s *RecordStore) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	var goals []domain.Goal
	if err := s.load(ctx, domain.GoalsKey, &goals); err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []domain.Goal{}
	}
	return goals, nil
}

// CreateGoal creates a goal with zero progress and no contributions
func (s *RecordStore) CreateGoal(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	goal := domain.Goal{
		ID:            s.NewID(),
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      input.Deadline,
		IsCompleted:   false,
		Contributions: []domain.Contribution{},
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := loadForWrite[domain.Goal](ctx, s, domain.GoalsKey)
	if err != nil {
		return nil, err
	}
	goals = append(goals, goal)

	if err := s.save(ctx, domain.GoalsKey, goals); err != nil {
		return nil, err
	}

	s.logger.Debug("goal created", zap.String("id", goal.ID), zap.String("target", goal.TargetAmount.String()))
	s.Observer.RecordMutation(entityGoal, "create", domain.MutationApplied)
	return &goal, nil
}

// UpdateGoal merges patch into the goal with the given id.
// Setting CurrentAmount here does not reconcile Contributions.
func (s *RecordStore) UpdateGoal(ctx context.Context, id string, patch domain.GoalPatch) (domain.MutationResult, error) {
	if err := patch.Validate(); err != nil {
		return domain.MutationNotFound, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := loadForWrite[domain.Goal](ctx, s, domain.GoalsKey)
	if err != nil {
		return domain.MutationNotFound, err
	}

	idx := indexOfGoal(goals, id)
	if idx < 0 {
		return s.notFound(entityGoal, "update", id), nil
	}
	patch.Apply(&goals[idx])

	if err := s.save(ctx, domain.GoalsKey, goals); err != nil {
		return domain.MutationNotFound, err
	}

	if patch.CurrentAmount != nil && !goals[idx].CurrentAmount.Equal(goals[idx].ContributionsTotal()) {
		s.logger.Info("goal current amount diverges from contributions",
			zap.String("id", id),
			zap.String("current", goals[idx].CurrentAmount.String()),
			zap.String("contributions", goals[idx].ContributionsTotal().String()),
		)
	}
	s.Observer.RecordMutation(entityGoal, "update", domain.MutationApplied)
	return domain.MutationApplied, nil
}

// DeleteGoal permanently removes the goal and its contributions
func (s *RecordStore) DeleteGoal(ctx context.Context, id string) (domain.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := loadForWrite[domain.Goal](ctx, s, domain.GoalsKey)
	if err != nil {
		return domain.MutationNotFound, err
	}

	idx := indexOfGoal(goals, id)
	if idx < 0 {
		return s.notFound(entityGoal, "delete", id), nil
	}
	goals = append(goals[:idx], goals[idx+1:]...)

	if err := s.save(ctx, domain.GoalsKey, goals); err != nil {
		return domain.MutationNotFound, err
	}

	s.logger.Debug("goal deleted", zap.String("id", id))
	s.Observer.RecordMutation(entityGoal, "delete", domain.MutationApplied)
	return domain.MutationApplied, nil
}

// AddContribution appends a contribution to the goal and grows its
// CurrentAmount by the same amount
func (s *RecordStore) AddContribution(ctx context.Context, goalID string, input ContributionInput) (domain.MutationResult, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.MutationNotFound, domain.NewValidationError("amount", "must be positive")
	}
	if input.Date.IsZero() {
		return domain.MutationNotFound, domain.NewValidationError("date", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := loadForWrite[domain.Goal](ctx, s, domain.GoalsKey)
	if err != nil {
		return domain.MutationNotFound, err
	}

	idx := indexOfGoal(goals, goalID)
	if idx < 0 {
		return s.notFound(entityGoal, "contribute", goalID), nil
	}

	goal := &goals[idx]
	goal.Contributions = append(goal.Contributions, domain.Contribution{
		ID:     s.NewID(),
		Amount: input.Amount,
		Date:   input.Date,
	})
	goal.CurrentAmount = goal.CurrentAmount.Add(input.Amount)

	if err := s.save(ctx, domain.GoalsKey, goals); err != nil {
		return domain.MutationNotFound, err
	}

	s.logger.Debug("contribution added",
		zap.String("goal_id", goalID),
		zap.String("amount", input.Amount.String()),
		zap.String("current", goal.CurrentAmount.String()),
	)
	s.Observer.RecordMutation(entityGoal, "contribute", domain.MutationApplied)
	return domain.MutationApplied, nil
}

// Snapshot reads both collections
func (s *RecordStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	txns, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	goals, err := s.ListGoals(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Transactions: txns, Goals: goals}, nil
}

// load decodes the collection under key into dst.
// Absent keys and unavailable storage leave dst empty.
func (s *RecordStore) load(ctx context.Context, key string, dst any) error {
	s.mu.RLock()
	data, found, err := s.Storage.Get(ctx, key)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			s.logger.Debug("storage unavailable, returning empty collection", zap.String("key", key))
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// loadForWrite is load without the unavailable-storage fallback, so that a
// mutation never overwrites a collection it could not read
func loadForWrite[T any](ctx context.Context, s *RecordStore, key string) ([]T, error) {
	data, found, err := s.Storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	var items []T
	if !found || len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return items, nil
}

func (s *RecordStore) save(ctx context.Context, key string, items any) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Storage.Set(ctx, key, data); err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return err
		}
		s.logger.Error("failed to persist collection", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *RecordStore) notFound(entity, operation, id string) domain.MutationResult {
	s.logger.Debug("mutation target not found",
		zap.String("entity", entity),
		zap.String("operation", operation),
		zap.String("id", id),
	)
	s.Observer.RecordMutation(entity, operation, domain.MutationNotFound)
	return domain.MutationNotFound
}

func indexOfTransaction(txns []domain.Transaction, id string) int {
	for i := range txns {
		if txns[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfGoal(goals []domain.Goal, id string) int {
	for i := range goals {
		if goals[i].ID == id {
			return i
		}
	}
	return -1
}

package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

// Fixed ids of the demonstration data set
const (
	SampleGoalTravel    = "goal1"
	SampleGoalEmergency = "goal2"
)

// SampleSeeder loads the demonstration data set into an empty store
type SampleSeeder struct {
	storage domain.KeyValueStore
}

// NewSampleSeeder creates a new SampleSeeder instance
func NewSampleSeeder(storage domain.KeyValueStore) *SampleSeeder {
	return &SampleSeeder{
		storage: storage,
	}
}

// Seed writes the sample transactions and goals when neither collection
// exists yet. It reports whether anything was written.
func (s *SampleSeeder) Seed(ctx context.Context) (bool, error) {
	for _, key := range []string{domain.TransactionsKey, domain.GoalsKey} {
		_, found, err := s.storage.Get(ctx, key)
		if err != nil {
			return false, fmt.Errorf("failed to check %s: %w", key, err)
		}
		if found {
			return false, nil
		}
	}

	txns := SampleTransactions()
	for i := range txns {
		if err := txns[i].Validate(); err != nil {
			return false, err
		}
	}

	goals := SampleGoals()
	for i := range goals {
		if err := goals[i].Validate(); err != nil {
			return false, err
		}
	}

	if err := s.write(ctx, domain.TransactionsKey, txns); err != nil {
		return false, err
	}
	if err := s.write(ctx, domain.GoalsKey, goals); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SampleSeeder) write(ctx context.Context, key string, items any) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.storage.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to seed %s: %w", key, err)
	}
	return nil
}

// SampleTransactions returns the demonstration transactions
func SampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		sampleTransaction("trans1", 5000, domain.TransactionTypeIncome, "Salário", "Salário mensal", "2024-01-15", "2024-01-15T10:00:00Z"),
		sampleTransaction("trans2", 1200, domain.TransactionTypeExpense, "Moradia", "Aluguel", "2024-01-05", "2024-01-05T09:00:00Z"),
		sampleTransaction("trans3", 300, domain.TransactionTypeExpense, "Alimentação", "Supermercado", "2024-01-10", "2024-01-10T14:30:00Z"),
		sampleTransaction("trans4", 150, domain.TransactionTypeExpense, "Transporte", "Combustível", "2024-01-12", "2024-01-12T16:45:00Z"),
		sampleTransaction("trans5", 800, domain.TransactionTypeIncome, "Freelance", "Projeto web", "2024-01-20", "2024-01-20T11:15:00Z"),
	}
}

// SampleGoals returns the demonstration goals with their contributions
func SampleGoals() []domain.Goal {
	return []domain.Goal{
		{
			ID:            SampleGoalTravel,
			Name:          "Viagem para Europa",
			TargetAmount:  decimal.NewFromInt(15000),
			CurrentAmount: decimal.NewFromInt(3500),
			Deadline:      domain.MustParseDate("2024-12-31"),
			Contributions: []domain.Contribution{
				{ID: "contrib1", Amount: decimal.NewFromInt(1500), Date: domain.MustParseDate("2024-01-01")},
				{ID: "contrib2", Amount: decimal.NewFromInt(2000), Date: domain.MustParseDate("2024-01-15")},
			},
		},
		{
			ID:            SampleGoalEmergency,
			Name:          "Reserva de Emergência",
			TargetAmount:  decimal.NewFromInt(10000),
			CurrentAmount: decimal.NewFromInt(7500),
			Deadline:      domain.MustParseDate("2024-06-30"),
			Contributions: []domain.Contribution{
				{ID: "contrib3", Amount: decimal.NewFromInt(2500), Date: domain.MustParseDate("2024-01-01")},
				{ID: "contrib4", Amount: decimal.NewFromInt(5000), Date: domain.MustParseDate("2024-01-10")},
			},
		},
	}
}

func sampleTransaction(id string, amount int64, txType domain.TransactionType, category, description, date, createdAt string) domain.Transaction {
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		panic(err)
	}
	return domain.Transaction{
		ID:          id,
		Amount:      decimal.NewFromInt(amount),
		Type:        txType,
		Category:    category,
		Description: description,
		Date:        domain.MustParseDate(date),
		CreatedAt:   created,
	}
}

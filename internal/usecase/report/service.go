package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/usecase/aggregator"
)

// RecordReader is the read side of the record store
type RecordReader interface {
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	ListGoals(ctx context.Context) ([]domain.Goal, error)
}

// Snapshot is the read-only view handed to the exporter: the transactions
// of the active period, every goal, and the period label
type Snapshot struct {
	Period       domain.Period        `json:"period"`
	PeriodLabel  string               `json:"periodLabel"`
	GeneratedAt  time.Time            `json:"generatedAt"`
	Transactions []domain.Transaction `json:"transactions"`
	Goals        []domain.Goal        `json:"goals"`
	Income       decimal.Decimal      `json:"income"`
	Expenses     decimal.Decimal      `json:"expenses"`
	Balance      decimal.Decimal      `json:"balance"`
}

// Export is a rendered report ready to be saved, with the snapshot it was rendered from
type Export struct {
	Filename string
	Content  []byte
	Snapshot *Snapshot
}

// ReportService builds report snapshots and renders them
type ReportService struct {
	Records RecordReader
	Clock   func() time.Time
}

// NewReportService creates a new ReportService instance
func NewReportService(records RecordReader) *ReportService {
	return &ReportService{
		Records: records,
		Clock:   time.Now,
	}
}

// BuildSnapshot collects the report data for period as of now
func (s *ReportService) BuildSnapshot(ctx context.Context, period domain.Period, now time.Time) (*Snapshot, error) {
	txns, err := s.Records.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	goals, err := s.Records.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	filtered := aggregator.FilterByPeriod(txns, period, now)
	income := aggregator.TotalByType(filtered, domain.TransactionTypeIncome)
	expenses := aggregator.TotalByType(filtered, domain.TransactionTypeExpense)

	return &Snapshot{
		Period:       period,
		PeriodLabel:  period.Label(),
		GeneratedAt:  now,
		Transactions: filtered,
		Goals:        goals,
		Income:       income,
		Expenses:     expenses,
		Balance:      income.Sub(expenses),
	}, nil
}

// Export builds the snapshot for period at the current time and renders it
func (s *ReportService) Export(ctx context.Context, period domain.Period) (*Export, error) {
	now := s.Clock()

	snap, err := s.BuildSnapshot(ctx, period, now)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := RenderText(&buf, snap); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	return &Export{
		Filename: Filename(now),
		Content:  buf.Bytes(),
		Snapshot: snap,
	}, nil
}

// Filename returns the download name of a report generated at now
func Filename(now time.Time) string {
	return "relatorio-financeiro-" + now.UTC().Format(domain.DateLayout) + ".txt"
}

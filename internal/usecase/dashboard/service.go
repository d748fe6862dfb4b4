package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/usecase/aggregator"
)

const (
	// RecentLimit is the number of transactions shown on the dashboard
	RecentLimit = 5
	// GoalPreviewLimit is the number of goals shown on the dashboard
	GoalPreviewLimit = 5
)

// RecordReader is the read side of the record store
type RecordReader interface {
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	ListGoals(ctx context.Context) ([]domain.Goal, error)
}

// Summary holds the period totals
type Summary struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Balance     decimal.Decimal `json:"balance"`
	SavingsRate decimal.Decimal `json:"savingsRate"`
}

// GoalView is a goal together with its derived progress figures
type GoalView struct {
	Goal                domain.Goal     `json:"goal"`
	Progress            decimal.Decimal `json:"progress"`
	DisplayProgress     decimal.Decimal `json:"displayProgress"`
	DaysRemaining       int             `json:"daysRemaining"`
	Overdue             bool            `json:"overdue"`
	EffectivelyComplete bool            `json:"effectivelyComplete"`
}

// Dashboard is everything the overview screen renders
type Dashboard struct {
	Period      domain.Period              `json:"period"`
	PeriodLabel string                     `json:"periodLabel"`
	Summary     Summary                    `json:"summary"`
	Categories  []aggregator.CategoryTotal `json:"categories"`
	Monthly     []aggregator.MonthBucket   `json:"monthly"`
	Recent      []domain.Transaction       `json:"recent"`
	Goals       []GoalView                 `json:"goals"`
	GoalCount   int                        `json:"goalCount"`
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	Records RecordReader
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(records RecordReader) *DashboardService {
	return &DashboardService{
		Records: records,
	}
}

// GetDashboard composes the overview for the given period
// Logic:
//   - Summary and Categories: transactions within the period
//   - Monthly: trailing six months over all transactions, ignoring the period
//   - Recent: the five most recent transactions, ignoring the period
//   - Goals: the first five goals with their progress
func (s *DashboardService) GetDashboard(ctx context.Context, period domain.Period, now time.Time) (*Dashboard, error) {
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

	preview := goals
	if len(preview) > GoalPreviewLimit {
		preview = preview[:GoalPreviewLimit]
	}

	return &Dashboard{
		Period:      period,
		PeriodLabel: period.Label(),
		Summary: Summary{
			Income:      income,
			Expenses:    expenses,
			Balance:     income.Sub(expenses),
			SavingsRate: aggregator.SavingsRate(filtered),
		},
		Categories: aggregator.CategoryBreakdown(filtered),
		Monthly:    aggregator.MonthlySeries(txns, aggregator.DefaultMonthCount, now),
		Recent:     aggregator.RecentTransactions(txns, RecentLimit),
		Goals:      BuildGoalViews(preview, now),
		GoalCount:  len(goals),
	}, nil
}

// ListGoalViews returns views for every goal matching status
func (s *DashboardService) ListGoalViews(ctx context.Context, status aggregator.GoalStatus, now time.Time) ([]GoalView, error) {
	goals, err := s.Records.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return BuildGoalViews(aggregator.FilterGoals(goals, status), now), nil
}

// BuildGoalViews derives the progress figures of each goal.
// A goal past its deadline is overdue even when it is complete.
func BuildGoalViews(goals []domain.Goal, now time.Time) []GoalView {
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		days := aggregator.DaysRemaining(g.Deadline, now)
		views = append(views, GoalView{
			Goal:                g,
			Progress:            aggregator.GoalProgress(g),
			DisplayProgress:     aggregator.DisplayProgress(g),
			DaysRemaining:       days,
			Overdue:             days < 0,
			EffectivelyComplete: aggregator.IsGoalEffectivelyComplete(g),
		})
	}
	return views
}

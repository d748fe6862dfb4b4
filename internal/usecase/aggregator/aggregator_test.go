package aggregator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

func tx(id string, txType domain.TransactionType, amount int64, category, date string) domain.Transaction {
	return domain.Transaction{
		ID:          id,
		Amount:      decimal.NewFromInt(amount),
		Type:        txType,
		Category:    category,
		Description: category + " " + id,
		Date:        domain.MustParseDate(date),
	}
}

func ids(txns []domain.Transaction) []string {
	out := make([]string, 0, len(txns))
	for _, t := range txns {
		out = append(out, t.ID)
	}
	return out
}

func januaryLedger() []domain.Transaction {
	return []domain.Transaction{
		tx("t1", domain.TransactionTypeIncome, 5000, "Salário", "2024-01-15"),
		tx("t2", domain.TransactionTypeExpense, 1200, "Moradia", "2024-01-05"),
		tx("t3", domain.TransactionTypeExpense, 300, "Alimentação", "2024-01-10"),
	}
}

func TestFilterByPeriod_MonthTotals(t *testing.T) {
	now := time.Date(2024, time.January, 31, 18, 30, 0, 0, time.UTC)

	cutoff, ok := PeriodCutoff(domain.PeriodMonth, now)
	require.True(t, ok)
	assert.Equal(t, "2023-12-31", cutoff.String())

	filtered := FilterByPeriod(januaryLedger(), domain.PeriodMonth, now)
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(filtered))

	assert.True(t, Balance(filtered).Equal(decimal.NewFromInt(3500)))
	assert.True(t, SavingsRate(filtered).Equal(decimal.NewFromInt(70)), "got %s", SavingsRate(filtered))
}

func TestFilterByPeriod(t *testing.T) {
	now := time.Date(2024, time.March, 31, 9, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		tx("old", domain.TransactionTypeExpense, 10, "Outros", "2022-12-01"),
		tx("year-edge", domain.TransactionTypeExpense, 10, "Outros", "2023-03-31"),
		tx("quarter-before", domain.TransactionTypeExpense, 10, "Outros", "2023-12-30"),
		tx("quarter-edge", domain.TransactionTypeExpense, 10, "Outros", "2023-12-31"),
		tx("month-before", domain.TransactionTypeExpense, 10, "Outros", "2024-02-28"),
		tx("month-edge", domain.TransactionTypeExpense, 10, "Outros", "2024-02-29"),
		tx("today", domain.TransactionTypeExpense, 10, "Outros", "2024-03-31"),
	}

	tests := []struct {
		name   string
		period domain.Period
		want   []string
	}{
		{
			name:   "month clamps to leap day",
			period: domain.PeriodMonth,
			want:   []string{"month-edge", "today"},
		},
		{
			name:   "three months",
			period: domain.PeriodThreeMonths,
			want:   []string{"quarter-edge", "month-before", "month-edge", "today"},
		},
		{
			name:   "year",
			period: domain.PeriodYear,
			want:   []string{"year-edge", "quarter-before", "quarter-edge", "month-before", "month-edge", "today"},
		},
		{
			name:   "all",
			period: domain.PeriodAll,
			want:   ids(txns),
		},
		{
			name:   "unknown behaves like all",
			period: domain.Period("decade"),
			want:   ids(txns),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterByPeriod(txns, tt.period, now)))
		})
	}
}

func TestSubtractMonths_ClampsToLastDay(t *testing.T) {
	tests := []struct {
		from   string
		months int
		want   string
	}{
		{from: "2024-03-31", months: 1, want: "2024-02-29"},
		{from: "2023-03-31", months: 1, want: "2023-02-28"},
		{from: "2024-02-29", months: 12, want: "2023-02-28"},
		{from: "2024-05-31", months: 3, want: "2024-02-29"},
		{from: "2024-01-31", months: 1, want: "2023-12-31"},
		{from: "2024-01-15", months: 3, want: "2023-10-15"},
		{from: "2024-07-31", months: 1, want: "2024-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			got := SubtractMonths(domain.MustParseDate(tt.from), tt.months)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBalance_EqualsIncomeMinusExpenses(t *testing.T) {
	sets := [][]domain.Transaction{
		nil,
		januaryLedger(),
		{tx("e", domain.TransactionTypeExpense, 80, "Lazer", "2024-01-01")},
		{tx("i", domain.TransactionTypeIncome, 80, "Freelance", "2024-01-01")},
	}

	for _, txns := range sets {
		want := TotalByType(txns, domain.TransactionTypeIncome).Sub(TotalByType(txns, domain.TransactionTypeExpense))
		assert.True(t, Balance(txns).Equal(want))
	}
	assert.True(t, Balance(nil).IsZero())
}

func TestSavingsRate_NoIncome(t *testing.T) {
	assert.True(t, SavingsRate(nil).IsZero())
	assert.True(t, SavingsRate([]domain.Transaction{
		tx("e", domain.TransactionTypeExpense, 500, "Lazer", "2024-01-01"),
	}).IsZero())

	// Spending more than earned gives a negative rate
	rate := SavingsRate([]domain.Transaction{
		tx("i", domain.TransactionTypeIncome, 1000, "Salário", "2024-01-01"),
		tx("e", domain.TransactionTypeExpense, 1500, "Lazer", "2024-01-02"),
	})
	assert.True(t, rate.Equal(decimal.NewFromInt(-50)), "got %s", rate)
}

func TestExpensesByCategory_GroupsExpensesOnly(t *testing.T) {
	txns := []domain.Transaction{
		tx("e1", domain.TransactionTypeExpense, 1200, "Moradia", "2024-01-05"),
		tx("e2", domain.TransactionTypeExpense, 300, "Alimentação", "2024-01-10"),
		tx("e3", domain.TransactionTypeExpense, 100, "Alimentação", "2024-01-12"),
		tx("i1", domain.TransactionTypeIncome, 5000, "Salário", "2024-01-15"),
	}

	got := ExpensesByCategory(txns)
	require.Len(t, got, 2)
	assert.True(t, got["Moradia"].Equal(decimal.NewFromInt(1200)))
	assert.True(t, got["Alimentação"].Equal(decimal.NewFromInt(400)))

	breakdown := CategoryBreakdown(txns)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Moradia", breakdown[0].Category)
	assert.Equal(t, "#EF4444", breakdown[0].Color)
	assert.True(t, breakdown[0].Share.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, "Alimentação", breakdown[1].Category)
	assert.True(t, breakdown[1].Share.Equal(decimal.NewFromInt(25)))
}

func TestCategoryBreakdown_UnknownCategoryAndTies(t *testing.T) {
	txns := []domain.Transaction{
		tx("a", domain.TransactionTypeExpense, 50, "Pets", "2024-01-01"),
		tx("b", domain.TransactionTypeExpense, 50, "Lazer", "2024-01-02"),
	}

	breakdown := CategoryBreakdown(txns)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Lazer", breakdown[0].Category)
	assert.Equal(t, "Pets", breakdown[1].Category)
	assert.Equal(t, domain.DefaultCategoryColor, breakdown[1].Color)
	assert.Equal(t, domain.DefaultCategoryIcon, breakdown[1].Icon)

	assert.Empty(t, CategoryBreakdown(nil))
}

func TestMonthlySeries(t *testing.T) {
	now := time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		tx("before-window", domain.TransactionTypeIncome, 999, "Salário", "2023-09-30"),
		tx("oct", domain.TransactionTypeIncome, 100, "Salário", "2023-10-01"),
		tx("feb-in", domain.TransactionTypeIncome, 5000, "Salário", "2024-02-29"),
		tx("feb-out", domain.TransactionTypeExpense, 1200, "Moradia", "2024-02-01"),
		tx("mar-out", domain.TransactionTypeExpense, 300, "Alimentação", "2024-03-31"),
		tx("future", domain.TransactionTypeExpense, 300, "Alimentação", "2024-04-01"),
	}

	series := MonthlySeries(txns, 0, now)
	require.Len(t, series, DefaultMonthCount)

	keys := make([]string, 0, len(series))
	labels := make([]string, 0, len(series))
	for _, b := range series {
		keys = append(keys, b.Key)
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"2023-10", "2023-11", "2023-12", "2024-01", "2024-02", "2024-03"}, keys)
	assert.Equal(t, []string{"out.", "nov.", "dez.", "jan.", "fev.", "mar."}, labels)

	assert.True(t, series[0].Income.Equal(decimal.NewFromInt(100)))
	assert.True(t, series[4].Income.Equal(decimal.NewFromInt(5000)))
	assert.True(t, series[4].Expenses.Equal(decimal.NewFromInt(1200)))
	assert.True(t, series[5].Expenses.Equal(decimal.NewFromInt(300)))
	assert.True(t, series[1].Income.IsZero())
	assert.True(t, series[1].Expenses.IsZero())
}

func TestMonthlySeries_CustomCountAcrossYear(t *testing.T) {
	now := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	series := MonthlySeries(nil, 3, now)
	require.Len(t, series, 3)
	assert.Equal(t, "2023-11", series[0].Key)
	assert.Equal(t, "2024-01", series[2].Key)
}

func TestRecentTransactions(t *testing.T) {
	txns := []domain.Transaction{
		tx("a", domain.TransactionTypeExpense, 1, "Outros", "2024-01-05"),
		tx("b", domain.TransactionTypeExpense, 1, "Outros", "2024-01-20"),
		tx("c", domain.TransactionTypeExpense, 1, "Outros", "2024-01-10"),
		tx("d", domain.TransactionTypeExpense, 1, "Outros", "2024-01-20"),
	}
	original := ids(txns)

	assert.Equal(t, []string{"b", "d", "c"}, ids(RecentTransactions(txns, 3)))
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(RecentTransactions(txns, -1)))
	assert.Empty(t, RecentTransactions(txns, 0))
	assert.Empty(t, RecentTransactions(nil, 5))
	// Input order is untouched
	assert.Equal(t, original, ids(txns))
}

func TestGoalProgress_Unclamped(t *testing.T) {
	goal := domain.Goal{
		TargetAmount:  decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(150),
	}

	assert.True(t, GoalProgress(goal).Equal(decimal.NewFromInt(150)))
	assert.True(t, DisplayProgress(goal).Equal(decimal.NewFromInt(100)))
	assert.True(t, IsGoalEffectivelyComplete(goal))

	assert.True(t, GoalProgress(domain.Goal{CurrentAmount: decimal.NewFromInt(10)}).IsZero())
}

func TestGoalProgress_ContributionsReachTarget(t *testing.T) {
	goal := domain.Goal{
		ID:           "goal1",
		Name:         "Reserva de Emergência",
		TargetAmount: decimal.NewFromInt(10000),
		Deadline:     domain.MustParseDate("2024-06-30"),
	}
	for i, a := range []int64{2500, 5000, 2500} {
		amount := decimal.NewFromInt(a)
		goal.Contributions = append(goal.Contributions, domain.Contribution{
			ID:     string(rune('a' + i)),
			Amount: amount,
			Date:   domain.NewDate(2024, time.January, i+1),
		})
		goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	}

	assert.True(t, goal.CurrentAmount.Equal(decimal.NewFromInt(10000)))
	assert.True(t, GoalProgress(goal).Equal(decimal.NewFromInt(100)))
	assert.False(t, goal.IsCompleted)
	assert.True(t, IsGoalEffectivelyComplete(goal))
}

func TestIsGoalEffectivelyComplete_ExplicitFlag(t *testing.T) {
	goal := domain.Goal{
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(10),
		IsCompleted:   true,
	}
	assert.True(t, IsGoalEffectivelyComplete(goal))

	goal.IsCompleted = false
	assert.False(t, IsGoalEffectivelyComplete(goal))
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name     string
		deadline string
		now      time.Time
		want     int
	}{
		{
			name:     "overdue by nine days",
			deadline: "2024-01-01",
			now:      time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			want:     -9,
		},
		{
			name:     "overdue during the day rounds up",
			deadline: "2024-01-01",
			now:      time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC),
			want:     -9,
		},
		{
			name:     "due today at midnight",
			deadline: "2024-01-10",
			now:      time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			want:     0,
		},
		{
			name:     "partial day ahead counts as one",
			deadline: "2024-01-11",
			now:      time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "end of year",
			deadline: "2024-12-31",
			now:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			want:     365,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysRemaining(domain.MustParseDate(tt.deadline), tt.now))
		})
	}
}

func TestFilterGoals(t *testing.T) {
	goals := []domain.Goal{
		{ID: "g1", IsCompleted: false, TargetAmount: decimal.NewFromInt(10), CurrentAmount: decimal.NewFromInt(20)},
		{ID: "g2", IsCompleted: true},
		{ID: "g3", IsCompleted: false},
	}

	goalIDs := func(gs []domain.Goal) []string {
		out := []string{}
		for _, g := range gs {
			out = append(out, g.ID)
		}
		return out
	}

	assert.Equal(t, []string{"g1", "g2", "g3"}, goalIDs(FilterGoals(goals, GoalStatusAll)))
	// g1 is over target but not flagged, so it stays active
	assert.Equal(t, []string{"g1", "g3"}, goalIDs(FilterGoals(goals, GoalStatusActive)))
	assert.Equal(t, []string{"g2"}, goalIDs(FilterGoals(goals, GoalStatusCompleted)))

	_, err := ParseGoalStatus("archived")
	assert.ErrorIs(t, err, domain.ErrValidation)
	status, err := ParseGoalStatus("")
	require.NoError(t, err)
	assert.Equal(t, GoalStatusAll, status)
}

func TestFilterTransactions(t *testing.T) {
	txns := []domain.Transaction{
		{ID: "1", Type: domain.TransactionTypeIncome, Category: "Salário", Description: "Salário mensal", Date: domain.MustParseDate("2024-01-15"), Amount: decimal.NewFromInt(5000)},
		{ID: "2", Type: domain.TransactionTypeExpense, Category: "Moradia", Description: "Aluguel", Date: domain.MustParseDate("2024-01-05"), Amount: decimal.NewFromInt(1200)},
		{ID: "3", Type: domain.TransactionTypeExpense, Category: "Alimentação", Description: "Supermercado", Date: domain.MustParseDate("2024-01-10"), Amount: decimal.NewFromInt(300)},
		{ID: "4", Type: domain.TransactionTypeIncome, Category: "Freelance", Description: "Projeto SALÁRIO extra", Date: domain.MustParseDate("2024-02-01"), Amount: decimal.NewFromInt(800)},
	}
	start := domain.MustParseDate("2024-01-05")
	end := domain.MustParseDate("2024-01-15")

	tests := []struct {
		name   string
		filter TransactionFilter
		want   []string
	}{
		{name: "no criteria sorts by date", filter: TransactionFilter{}, want: []string{"4", "1", "3", "2"}},
		{name: "case-insensitive search", filter: TransactionFilter{Search: "salário"}, want: []string{"4", "1"}},
		{name: "category", filter: TransactionFilter{Category: "Moradia"}, want: []string{"2"}},
		{name: "type", filter: TransactionFilter{Type: domain.TransactionTypeExpense}, want: []string{"3", "2"}},
		{name: "inclusive date range", filter: TransactionFilter{StartDate: &start, EndDate: &end}, want: []string{"1", "3", "2"}},
		{name: "combined", filter: TransactionFilter{Type: domain.TransactionTypeIncome, EndDate: &end}, want: []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterTransactions(txns, tt.filter)))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name      string
		page      int
		perPage   int
		wantPage  int
		wantFirst int
		wantLen   int
	}{
		{name: "first page default size", page: 1, perPage: 0, wantPage: 1, wantFirst: 0, wantLen: 20},
		{name: "last partial page", page: 3, perPage: 20, wantPage: 3, wantFirst: 40, wantLen: 5},
		{name: "page past end clamps", page: 9, perPage: 20, wantPage: 3, wantFirst: 40, wantLen: 5},
		{name: "page below one clamps", page: -2, perPage: 10, wantPage: 1, wantFirst: 0, wantLen: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, 45, p.TotalItems)
			require.Len(t, p.Items, tt.wantLen)
			assert.Equal(t, tt.wantFirst, p.Items[0])
		})
	}

	empty := Paginate([]int{}, 3, 10)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 0, empty.TotalPages)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}

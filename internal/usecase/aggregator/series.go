package aggregator

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

// DefaultMonthCount is the trailing window of the monthly series
const DefaultMonthCount = 6

var monthLabels = [...]string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."}

// MonthBucket holds the income and expense totals of one calendar month
type MonthBucket struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// MonthLabel returns the short pt-BR name of month
func MonthLabel(month time.Month) string {
	return monthLabels[month-1]
}

// MonthlySeries returns monthCount buckets, oldest first, ending with the
// calendar month that contains now. A non-positive monthCount selects
// DefaultMonthCount.
//
// The series always covers the trailing window, so callers pass the full
// unfiltered transaction set.
func MonthlySeries(txns []domain.Transaction, monthCount int, now time.Time) []MonthBucket {
	if monthCount <= 0 {
		monthCount = DefaultMonthCount
	}

	today := domain.DateOf(now)
	first := domain.NewDate(today.Year(), today.Month(), 1)

	buckets := make([]MonthBucket, monthCount)
	index := make(map[string]int, monthCount)
	for i := range buckets {
		start := SubtractMonths(first, monthCount-1-i)
		key := fmt.Sprintf("%04d-%02d", start.Year(), int(start.Month()))
		buckets[i] = MonthBucket{
			Key:      key,
			Label:    MonthLabel(start.Month()),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
		index[key] = i
	}

	for _, tx := range txns {
		i, ok := index[tx.Date.Format("2006-01")]
		if !ok {
			continue
		}
		switch tx.Type {
		case domain.TransactionTypeIncome:
			buckets[i].Income = buckets[i].Income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			buckets[i].Expenses = buckets[i].Expenses.Add(tx.Amount)
		}
	}
	return buckets
}

// RecentTransactions returns a copy of txns sorted by date, most recent first,
// truncated to limit. Transactions sharing a date keep their relative order.
// A negative limit disables truncation.
func RecentTransactions(txns []domain.Transaction, limit int) []domain.Transaction {
	sorted := slices.Clone(txns)
	if sorted == nil {
		sorted = []domain.Transaction{}
	}
	slices.SortStableFunc(sorted, byDateDesc)

	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func byDateDesc(a, b domain.Transaction) int {
	return b.Date.Compare(a.Date.Time)
}

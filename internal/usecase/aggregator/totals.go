package aggregator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// TotalByType sums the amounts of the transactions of the given type
func TotalByType(txns []domain.Transaction, txType domain.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txns {
		if tx.Type == txType {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Balance is total income minus total expenses
func Balance(txns []domain.Transaction) decimal.Decimal {
	return TotalByType(txns, domain.TransactionTypeIncome).Sub(TotalByType(txns, domain.TransactionTypeExpense))
}

// SavingsRate returns the percentage of income retained after expenses.
// It is zero when there is no positive income.
func SavingsRate(txns []domain.Transaction) decimal.Decimal {
	income := TotalByType(txns, domain.TransactionTypeIncome)
	if !income.IsPositive() {
		return decimal.Zero
	}
	expenses := TotalByType(txns, domain.TransactionTypeExpense)
	return income.Sub(expenses).Div(income).Mul(hundred)
}

// ExpensesByCategory sums expense amounts grouped by category
func ExpensesByCategory(txns []domain.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txns {
		if tx.Type != domain.TransactionTypeExpense {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// CategoryTotal is one slice of the expense breakdown, enriched with the
// category's display metadata
type CategoryTotal struct {
	Category string          `json:"category"`
	Color    string          `json:"color"`
	Icon     string          `json:"icon"`
	Total    decimal.Decimal `json:"total"`
	Share    decimal.Decimal `json:"share"`
}

// CategoryBreakdown returns the expense totals per category, largest first.
// Equal totals are ordered by category name. Share is the percentage of all
// expenses in txns.
func CategoryBreakdown(txns []domain.Transaction) []CategoryTotal {
	byCategory := ExpensesByCategory(txns)

	grand := decimal.Zero
	for _, total := range byCategory {
		grand = grand.Add(total)
	}

	breakdown := make([]CategoryTotal, 0, len(byCategory))
	for name, total := range byCategory {
		meta := domain.LookupCategory(name)
		share := decimal.Zero
		if grand.IsPositive() {
			share = total.Div(grand).Mul(hundred)
		}
		breakdown = append(breakdown, CategoryTotal{
			Category: name,
			Color:    meta.Color,
			Icon:     meta.Icon,
			Total:    total,
			Share:    share,
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if c := breakdown[i].Total.Cmp(breakdown[j].Total); c != 0 {
			return c > 0
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

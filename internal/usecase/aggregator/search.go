package aggregator

import (
	"slices"
	"strings"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

// DefaultPerPage is the transaction list page size
const DefaultPerPage = 20

// TransactionFilter narrows a transaction list. Zero-valued fields do not
// filter.
type TransactionFilter struct {
	// Search matches a case-insensitive substring of the description
	Search    string
	Category  string
	Type      domain.TransactionType
	StartDate *domain.Date
	EndDate   *domain.Date
}

// Matches reports whether tx passes every set criterion. Both date bounds
// are inclusive.
func (f TransactionFilter) Matches(tx domain.Transaction) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(tx.Description), strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.StartDate != nil && tx.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && tx.Date.After(*f.EndDate) {
		return false
	}
	return true
}

// FilterTransactions returns the transactions matching filter, most recent first
func FilterTransactions(txns []domain.Transaction, filter TransactionFilter) []domain.Transaction {
	filtered := make([]domain.Transaction, 0, len(txns))
	for _, tx := range txns {
		if filter.Matches(tx) {
			filtered = append(filtered, tx)
		}
	}
	slices.SortStableFunc(filtered, byDateDesc)
	return filtered
}

// Page is one page of a paginated list
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items into pages of perPage and returns the requested one.
// page is clamped to [1, TotalPages]; a non-positive perPage selects
// DefaultPerPage. An empty list has zero pages and reports page 1.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	totalPages := (len(items) + perPage - 1) / perPage

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := min((page-1)*perPage, len(items))
	end := min(start+perPage, len(items))

	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	return Page[T]{
		Items:      pageItems,
		Page:       page,
		PerPage:    perPage,
		TotalItems: len(items),
		TotalPages: totalPages,
	}
}

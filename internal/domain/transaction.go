package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid reports whether t is a known transaction type
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single dated income or expense record.
// Date is the economic date supplied by the user; CreatedAt is set once when
// the record is first stored.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Validate ensures the transaction adheres to domain rules
// Returns a *ValidationError if validation fails
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("amount", "must be positive")
	}
	if !t.Type.IsValid() {
		return NewValidationError("type", "must be income or expense")
	}
	if strings.TrimSpace(t.Category) == "" {
		return NewValidationError("category", "is required")
	}
	if t.Date.IsZero() {
		return NewValidationError("date", "is required")
	}
	return nil
}

// TransactionPatch carries the fields of a partial update.
// Nil fields are left untouched. ID and CreatedAt are immutable and have no
// counterpart here.
type TransactionPatch struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *TransactionType `json:"type,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *Date            `json:"date,omitempty"`
}

// Validate checks the values present in the patch
func (p TransactionPatch) Validate() error {
	if p.Amount != nil && p.Amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("amount", "must be positive")
	}
	if p.Type != nil && !p.Type.IsValid() {
		return NewValidationError("type", "must be income or expense")
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return NewValidationError("category", "cannot be empty")
	}
	if p.Date != nil && p.Date.IsZero() {
		return NewValidationError("date", "cannot be empty")
	}
	return nil
}

// Apply merges the patch into t
func (p TransactionPatch) Apply(t *Transaction) {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
}

package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Contribution is an append-only amount applied toward a goal
type Contribution struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   Date            `json:"date"`
}

// Goal represents a savings target.
//
// CurrentAmount equals the sum of Contributions as long as the goal is only
// grown through contributions. A direct patch of CurrentAmount does not
// touch Contributions, so the two may diverge.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      Date            `json:"deadline"`
	IsCompleted   bool            `json:"isCompleted"`
	Contributions []Contribution  `json:"contributions"`
}

// Validate ensures the goal adheres to domain rules
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("targetAmount", "must be positive")
	}
	if g.CurrentAmount.IsNegative() {
		return NewValidationError("currentAmount", "cannot be negative")
	}
	if g.Deadline.IsZero() {
		return NewValidationError("deadline", "is required")
	}
	return nil
}

// ContributionsTotal sums the amounts of all recorded contributions
func (g *Goal) ContributionsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, c := range g.Contributions {
		total = total.Add(c.Amount)
	}
	return total
}

// GoalPatch carries the fields of a partial goal update
type GoalPatch struct {
	Name          *string          `json:"name,omitempty"`
	TargetAmount  *decimal.Decimal `json:"targetAmount,omitempty"`
	CurrentAmount *decimal.Decimal `json:"currentAmount,omitempty"`
	Deadline      *Date            `json:"deadline,omitempty"`
	IsCompleted   *bool            `json:"isCompleted,omitempty"`
}

// Validate checks the values present in the patch
func (p GoalPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return NewValidationError("name", "cannot be empty")
	}
	if p.TargetAmount != nil && p.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("targetAmount", "must be positive")
	}
	if p.CurrentAmount != nil && p.CurrentAmount.IsNegative() {
		return NewValidationError("currentAmount", "cannot be negative")
	}
	if p.Deadline != nil && p.Deadline.IsZero() {
		return NewValidationError("deadline", "cannot be empty")
	}
	return nil
}

// Apply merges the patch into g. Contributions are never reconciled.
func (p GoalPatch) Apply(g *Goal) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		g.CurrentAmount = *p.CurrentAmount
	}
	if p.Deadline != nil {
		g.Deadline = *p.Deadline
	}
	if p.IsCompleted != nil {
		g.IsCompleted = *p.IsCompleted
	}
}

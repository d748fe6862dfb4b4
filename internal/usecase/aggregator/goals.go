package aggregator

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/fintrack-backend/internal/domain"
)

// GoalStatus selects goals by their explicit completion flag
type GoalStatus string

const (
	GoalStatusAll       GoalStatus = "all"
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
)

// ParseGoalStatus validates a goal status selector. An empty string selects
// GoalStatusAll.
func ParseGoalStatus(s string) (GoalStatus, error) {
	switch st := GoalStatus(s); st {
	case "":
		return GoalStatusAll, nil
	case GoalStatusAll, GoalStatusActive, GoalStatusCompleted:
		return st, nil
	default:
		return "", domain.NewValidationError("status", "must be all, active or completed")
	}
}

// GoalProgress returns CurrentAmount as a percentage of TargetAmount.
// The result is not clamped: 150 of 100 yields 150. A non-positive target
// yields zero.
func GoalProgress(goal domain.Goal) decimal.Decimal {
	if !goal.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	return goal.CurrentAmount.Div(goal.TargetAmount).Mul(hundred)
}

// DisplayProgress is GoalProgress capped at 100 for progress bars
func DisplayProgress(goal domain.Goal) decimal.Decimal {
	return decimal.Min(GoalProgress(goal), hundred)
}

// DaysRemaining returns the whole days from now until the deadline, rounded up.
// Zero means due today and negative values count the days overdue.
func DaysRemaining(deadline domain.Date, now time.Time) int {
	diff := deadline.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// IsGoalEffectivelyComplete reports whether the goal is flagged complete or
// has reached its target. It is derived on every call and never persisted.
func IsGoalEffectivelyComplete(goal domain.Goal) bool {
	return goal.IsCompleted || GoalProgress(goal).GreaterThanOrEqual(hundred)
}

// FilterGoals returns the goals matching status in their original order.
// Only the explicit IsCompleted flag is considered; unknown statuses match all.
func FilterGoals(goals []domain.Goal, status GoalStatus) []domain.Goal {
	filtered := make([]domain.Goal, 0, len(goals))
	for _, g := range goals {
		switch status {
		case GoalStatusActive:
			if g.IsCompleted {
				continue
			}
		case GoalStatusCompleted:
			if !g.IsCompleted {
				continue
			}
		}
		filtered = append(filtered, g)
	}
	return filtered
}

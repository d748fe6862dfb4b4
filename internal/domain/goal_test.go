package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGoal_Validate(t *testing.T) {
	tests := []struct {
		name    string
		goal    Goal
		wantErr bool
		errMsg  string
	}{
		{
			name: "new goal should pass",
			goal: Goal{
				ID:            "goal1",
				Name:          "Viagem para Europa",
				TargetAmount:  decimal.NewFromInt(15000),
				CurrentAmount: decimal.Zero,
				Deadline:      NewDate(2024, time.December, 31),
			},
			wantErr: false,
		},
		{
			name: "empty name should fail",
			goal: Goal{
				Name:         "",
				TargetAmount: decimal.NewFromInt(100),
				Deadline:     NewDate(2024, time.December, 31),
			},
			wantErr: true,
			errMsg:  "invalid name",
		},
		{
			name: "zero target should fail",
			goal: Goal{
				Name:         "Reserva",
				TargetAmount: decimal.Zero,
				Deadline:     NewDate(2024, time.December, 31),
			},
			wantErr: true,
			errMsg:  "invalid targetAmount",
		},
		{
			name: "negative current amount should fail",
			goal: Goal{
				Name:          "Reserva",
				TargetAmount:  decimal.NewFromInt(100),
				CurrentAmount: decimal.NewFromInt(-1),
				Deadline:      NewDate(2024, time.December, 31),
			},
			wantErr: true,
			errMsg:  "invalid currentAmount",
		},
		{
			name: "missing deadline should fail",
			goal: Goal{
				Name:         "Reserva",
				TargetAmount: decimal.NewFromInt(100),
			},
			wantErr: true,
			errMsg:  "invalid deadline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.goal.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGoalPatch_CurrentAmountDoesNotReconcileContributions(t *testing.T) {
	goal := Goal{
		Name:          "Reserva de Emergência",
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.NewFromInt(7500),
		Contributions: []Contribution{
			{ID: "contrib3", Amount: decimal.NewFromInt(2500)},
			{ID: "contrib4", Amount: decimal.NewFromInt(5000)},
		},
	}

	current := decimal.NewFromInt(9000)
	GoalPatch{CurrentAmount: &current}.Apply(&goal)

	assert.True(t, goal.CurrentAmount.Equal(current))
	assert.Len(t, goal.Contributions, 2)
	assert.True(t, goal.ContributionsTotal().Equal(decimal.NewFromInt(7500)))
}

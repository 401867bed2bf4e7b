package models

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SavingsGoal is a named target with a running deposited total. The current
// amount may overshoot the target.
type SavingsGoal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *civil.Date     `json:"deadline"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SavingsGoalInput carries the caller-supplied fields of a new goal.
type SavingsGoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *civil.Date
}

// IsComplete reports whether the deposits reached the target.
func (g SavingsGoal) IsComplete() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// ProgressPercent is the display percentage, clamped to [0, 100].
func (g SavingsGoal) ProgressPercent() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return 100
	}
	f, _ := pct.Round(2).Float64()
	return f
}

// Clone returns a copy that shares no pointers with g.
func (g SavingsGoal) Clone() SavingsGoal {
	if g.Deadline != nil {
		d := *g.Deadline
		g.Deadline = &d
	}
	return g
}

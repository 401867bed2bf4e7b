package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MaxGoalMonths caps the savings timeline search at 50 years.
const MaxGoalMonths = 600

var (
	needsShare   = decimal.RequireFromString("0.50")
	wantsShare   = decimal.RequireFromString("0.30")
	savingsShare = decimal.RequireFromString("0.20")

	// ErrNonPositiveInput is returned when an amount must be strictly positive.
	ErrNonPositiveInput = errors.New("calculator: amounts must be positive")
)

// BudgetSplit is the 50/30/20 allocation of an income.
type BudgetSplit struct {
	Income  decimal.Decimal `json:"income"`
	Needs   decimal.Decimal `json:"needs"`
	Wants   decimal.Decimal `json:"wants"`
	Savings decimal.Decimal `json:"savings"`
}

// SplitBudget applies the 50/30/20 rule.
func SplitBudget(income decimal.Decimal) (BudgetSplit, error) {
	if !income.IsPositive() {
		return BudgetSplit{}, ErrNonPositiveInput
	}
	return BudgetSplit{
		Income:  income,
		Needs:   income.Mul(needsShare),
		Wants:   income.Mul(wantsShare),
		Savings: income.Mul(savingsShare),
	}, nil
}

// GoalTimeline tells how long a fixed monthly saving takes to reach a goal.
type GoalTimeline struct {
	Months     int             `json:"months"`
	Years      decimal.Decimal `json:"years"`
	TotalSaved decimal.Decimal `json:"total_saved"`
	GoalAmount decimal.Decimal `json:"goal_amount"`
	Reachable  bool            `json:"reachable"`
}

// MonthsToGoal simulates month-end deposits of monthlySaving into a balance
// compounding monthly at annualPercent. With a zero rate the month count is
// goal ÷ saving, truncated. The search stops at MaxGoalMonths.
func MonthsToGoal(goal, monthlySaving, annualPercent decimal.Decimal) (GoalTimeline, error) {
	if !goal.IsPositive() || !monthlySaving.IsPositive() {
		return GoalTimeline{}, ErrNonPositiveInput
	}
	if annualPercent.IsNegative() {
		return GoalTimeline{}, ErrNegativeInput
	}

	var months int
	reachable := true
	if annualPercent.IsZero() {
		whole := goal.Div(monthlySaving).Floor()
		if whole.GreaterThan(decimal.NewFromInt(MaxGoalMonths)) {
			months = MaxGoalMonths
			reachable = false
		} else {
			months = int(whole.IntPart())
		}
	} else {
		rate := MonthlyRate(annualPercent)
		growth := one.Add(rate)
		balance := decimal.Zero
		for balance.LessThan(goal) && months < MaxGoalMonths {
			balance = balance.Mul(growth).Add(monthlySaving).Round(internalScale)
			months++
		}
		reachable = balance.GreaterThanOrEqual(goal)
	}

	return GoalTimeline{
		Months:     months,
		Years:      decimal.NewFromInt(int64(months)).Div(twelve).Round(1),
		TotalSaved: monthlySaving.Mul(decimal.NewFromInt(int64(months))),
		GoalAmount: goal,
		Reachable:  reachable,
	}, nil
}

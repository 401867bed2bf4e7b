package progression

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"finlearn/internal/calculator"
	apperrors "finlearn/internal/errors"
	"finlearn/internal/models"
	"finlearn/internal/uuid"
)

func invalid(msg string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, msg)
}

// AddBudgetEntry appends an income or expense line and grants BudgetEntryXP.
// An empty kind means expense and an empty category means Other.
//
// Budget Master is not evaluated here; callers follow up with
// CheckBudgetMaster.
func (e *Engine) AddBudgetEntry(in models.BudgetEntryInput) (models.BudgetEntry, error) {
	if in.Kind == "" {
		in.Kind = models.EntryKindExpense
	}
	if in.Category == "" {
		in.Category = models.BudgetCategoryOther
	}
	in.Description = strings.TrimSpace(in.Description)
	switch {
	case !in.Amount.IsPositive():
		return models.BudgetEntry{}, invalid("amount must be positive")
	case in.Description == "":
		return models.BudgetEntry{}, invalid("description is required")
	case !in.Category.Valid():
		return models.BudgetEntry{}, invalid("unknown budget category")
	case !in.Kind.Valid():
		return models.BudgetEntry{}, invalid("kind must be income or expense")
	}

	var entry models.BudgetEntry
	err := e.update(func(rec *models.ProgressRecord) error {
		entry = models.BudgetEntry{
			ID:          uuid.New(),
			Category:    in.Category,
			Amount:      in.Amount,
			Description: in.Description,
			Kind:        in.Kind,
			CreatedAt:   e.now(),
		}
		rec.BudgetEntries = append(rec.BudgetEntries, entry)
		e.dirty = true
		e.note(models.ActionBudgetEntryAdded, entry.ID, BudgetEntryXP, map[string]any{
			"category": entry.Category,
			"kind":     entry.Kind,
			"amount":   entry.Amount.String(),
		})
		e.grantLocked(BudgetEntryXP, "budget_entry")
		e.milestonesLocked()
		return nil
	})
	return entry, err
}

// CountEntriesSince counts budget entries created on or after since, judged
// by calendar day in the engine's location.
func (e *Engine) CountEntriesSince(since civil.Date) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.countEntriesSinceLocked(since)
}

func (e *Engine) countEntriesSinceLocked(since civil.Date) int {
	n := 0
	for _, entry := range e.rec.BudgetEntries {
		if !civil.DateOf(entry.CreatedAt.In(e.loc)).Before(since) {
			n++
		}
	}
	return n
}

// BudgetWindowStart is the first day of the trailing seven-day window ending
// on today.
func BudgetWindowStart(today civil.Date) civil.Date {
	return today.AddDays(-(budgetMasterWindowDays - 1))
}

// CheckBudgetMaster unlocks budget_master when at least seven entries fall
// within the seven calendar days ending on today.
func (e *Engine) CheckBudgetMaster(today civil.Date) (bool, error) {
	var unlocked bool
	err := e.update(func(rec *models.ProgressRecord) error {
		if e.countEntriesSinceLocked(BudgetWindowStart(today)) >= budgetMasterEntries {
			unlocked = e.unlockLocked(AchievementBudgetMaster)
		}
		return nil
	})
	return unlocked, err
}

// AddSavingsGoal appends a goal, grants SavingsGoalXP and unlocks
// savings_guru at five goals.
func (e *Engine) AddSavingsGoal(in models.SavingsGoalInput) (models.SavingsGoal, error) {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return models.SavingsGoal{}, invalid("goal name is required")
	case !in.TargetAmount.IsPositive():
		return models.SavingsGoal{}, invalid("target amount must be positive")
	case in.CurrentAmount.IsNegative():
		return models.SavingsGoal{}, invalid("current amount must not be negative")
	case in.Deadline != nil && !in.Deadline.IsValid():
		return models.SavingsGoal{}, invalid("deadline is not a valid date")
	}

	var goal models.SavingsGoal
	err := e.update(func(rec *models.ProgressRecord) error {
		goal = models.SavingsGoal{
			ID:            uuid.New(),
			Name:          in.Name,
			TargetAmount:  in.TargetAmount,
			CurrentAmount: in.CurrentAmount,
			CreatedAt:     e.now(),
		}
		if in.Deadline != nil {
			d := *in.Deadline
			goal.Deadline = &d
		}
		rec.SavingsGoals = append(rec.SavingsGoals, goal)
		e.dirty = true
		e.note(models.ActionSavingsGoalAdded, goal.ID, SavingsGoalXP, map[string]any{
			"name":   goal.Name,
			"target": goal.TargetAmount.String(),
		})
		e.grantLocked(SavingsGoalXP, "savings_goal")
		if len(rec.SavingsGoals) >= savingsGuruGoals {
			e.unlockLocked(AchievementSavingsGuru)
		}
		e.milestonesLocked()
		goal = goal.Clone()
		return nil
	})
	return goal, err
}

// UpdateSavingsGoalProgress adds a deposit to a goal, grants DepositXP and
// unlocks goal_crusher once three goals have reached their target. Overshoot
// is kept.
func (e *Engine) UpdateSavingsGoalProgress(goalID string, deposit decimal.Decimal) (models.SavingsGoal, error) {
	if !deposit.IsPositive() {
		return models.SavingsGoal{}, invalid("deposit must be positive")
	}

	var goal models.SavingsGoal
	err := e.update(func(rec *models.ProgressRecord) error {
		idx := findGoal(rec, goalID)
		if idx < 0 {
			return apperrors.ErrGoalNotFound
		}
		g := &rec.SavingsGoals[idx]
		g.CurrentAmount = g.CurrentAmount.Add(deposit)
		e.dirty = true
		e.note(models.ActionSavingsDeposit, g.ID, DepositXP, map[string]any{
			"deposit": deposit.String(),
			"current": g.CurrentAmount.String(),
		})
		e.grantLocked(DepositXP, "savings_deposit")
		if completedGoals(rec) >= goalCrusherGoals {
			e.unlockLocked(AchievementGoalCrusher)
		}
		e.milestonesLocked()
		goal = rec.SavingsGoals[idx].Clone()
		return nil
	})
	return goal, err
}

func findGoal(rec *models.ProgressRecord, id string) int {
	for i := range rec.SavingsGoals {
		if rec.SavingsGoals[i].ID == id {
			return i
		}
	}
	return -1
}

func completedGoals(rec *models.ProgressRecord) int {
	n := 0
	for _, g := range rec.SavingsGoals {
		if g.IsComplete() {
			n++
		}
	}
	return n
}

// AddInvestment projects a SIP plan, stores it with its maturity value,
// grants InvestmentXP and unlocks early_investor at three plans.
func (e *Engine) AddInvestment(in models.InvestmentInput) (models.InvestmentRecord, error) {
	switch {
	case !in.MonthlyAmount.IsPositive():
		return models.InvestmentRecord{}, invalid("monthly amount must be positive")
	case !in.Years.IsPositive():
		return models.InvestmentRecord{}, invalid("years must be positive")
	case in.AnnualReturnPercent.IsNegative():
		return models.InvestmentRecord{}, invalid("annual return must not be negative")
	case calculator.CheckYears(in.Years) != nil:
		return models.InvestmentRecord{}, invalid(fmt.Sprintf("years must not exceed %d", calculator.MaxYears))
	}
	months := calculator.MonthsFromYears(in.Years)
	if months < 1 {
		return models.InvestmentRecord{}, invalid("investment must span at least one month")
	}
	proj, err := calculator.ProjectSIP(in.MonthlyAmount, months, calculator.MonthlyRate(in.AnnualReturnPercent))
	if err != nil {
		return models.InvestmentRecord{}, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}

	var inv models.InvestmentRecord
	err = e.update(func(rec *models.ProgressRecord) error {
		inv = models.InvestmentRecord{
			ID:                  uuid.New(),
			MonthlyAmount:       in.MonthlyAmount,
			Years:               in.Years,
			AnnualReturnPercent: in.AnnualReturnPercent,
			Months:              months,
			MaturityValue:       proj.MaturityValue,
			CreatedAt:           e.now(),
		}
		rec.Investments = append(rec.Investments, inv)
		e.dirty = true
		e.note(models.ActionInvestmentAdded, inv.ID, InvestmentXP, map[string]any{
			"monthly_amount": inv.MonthlyAmount.String(),
			"months":         inv.Months,
			"maturity_value": inv.MaturityValue.StringFixed(2),
		})
		e.grantLocked(InvestmentXP, "investment")
		if len(rec.Investments) >= earlyInvestorPlans {
			e.unlockLocked(AchievementEarlyInvestor)
		}
		e.milestonesLocked()
		return nil
	})
	return inv, err
}

package progression

import (
	"slices"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	apperrors "finlearn/internal/errors"
	"finlearn/internal/models"
)

// Record returns a copy of the full progress record.
func (e *Engine) Record() *models.ProgressRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rec.Clone()
}

// Profile is the player card shown on the dashboard.
type Profile struct {
	Level                 int         `json:"level"`
	LevelName             string      `json:"level_name"`
	NextLevelName         string      `json:"next_level_name,omitempty"`
	Experience            int         `json:"experience"`
	ExperienceToNextLevel int         `json:"experience_to_next_level"`
	LevelProgressPercent  float64     `json:"level_progress_percent"`
	StreakDays            int         `json:"streak_days"`
	LastActiveDate        *civil.Date `json:"last_active_date"`
	AchievementsUnlocked  int         `json:"achievements_unlocked"`
	AchievementsTotal     int         `json:"achievements_total"`
	ChallengesCompleted   int         `json:"challenges_completed"`
	ChallengesTotal       int         `json:"challenges_total"`
}

// Profile summarizes level, XP and streak.
func (e *Engine) Profile() Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec := e.rec

	idx := levelIndex(rec.Experience)
	cur := levels[idx]
	p := Profile{
		Level:                 cur.Level,
		LevelName:             cur.Name,
		Experience:            rec.Experience,
		ExperienceToNextLevel: rec.ExperienceToNextLevel,
		LevelProgressPercent:  100,
		StreakDays:            rec.StreakDays,
		AchievementsUnlocked:  len(rec.UnlockedAchievementIDs),
		AchievementsTotal:     len(achievements),
		ChallengesCompleted:   len(rec.CompletedChallengeIDs),
		ChallengesTotal:       len(challenges),
	}
	if rec.LastActiveDate != nil {
		d := *rec.LastActiveDate
		p.LastActiveDate = &d
	}
	if idx+1 < len(levels) {
		next := levels[idx+1]
		p.NextLevelName = next.Name
		span := decimal.NewFromInt(int64(next.XPRequired - cur.XPRequired))
		done := decimal.NewFromInt(int64(rec.Experience - cur.XPRequired))
		p.LevelProgressPercent, _ = done.Div(span).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	}
	return p
}

// AchievementStatus is a catalog entry with its unlock flag.
type AchievementStatus struct {
	models.AchievementDefinition
	Unlocked bool `json:"unlocked"`
}

// Achievements cross-references the catalog with the unlocked set.
func (e *Engine) Achievements() []AchievementStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]AchievementStatus, len(achievements))
	for i, a := range achievements {
		out[i] = AchievementStatus{AchievementDefinition: a, Unlocked: e.rec.HasAchievement(a.ID)}
	}
	return out
}

// ChallengeStatus is a catalog entry with its completion flag. Reward is what
// completing it actually grants.
type ChallengeStatus struct {
	models.ChallengeDefinition
	Completed bool `json:"completed"`
	Reward    int  `json:"reward"`
}

// Challenges lists the challenge catalog with completion flags.
func (e *Engine) Challenges() []ChallengeStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]ChallengeStatus, len(challenges))
	for i, c := range challenges {
		out[i] = ChallengeStatus{
			ChallengeDefinition: c,
			Completed:           e.rec.HasCompletedChallenge(c.ID),
			Reward:              ChallengeXP,
		}
	}
	return out
}

// BudgetEntries returns the entries in insertion order.
func (e *Engine) BudgetEntries() []models.BudgetEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.rec.BudgetEntries)
}

// SavingsGoals returns the goals in insertion order.
func (e *Engine) SavingsGoals() []models.SavingsGoal {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.SavingsGoal, len(e.rec.SavingsGoals))
	for i, g := range e.rec.SavingsGoals {
		out[i] = g.Clone()
	}
	return out
}

// Goal returns one savings goal.
func (e *Engine) Goal(id string) (models.SavingsGoal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := findGoal(e.rec, id)
	if idx < 0 {
		return models.SavingsGoal{}, apperrors.ErrGoalNotFound
	}
	return e.rec.SavingsGoals[idx].Clone(), nil
}

// Investments returns the SIP plans in insertion order.
func (e *Engine) Investments() []models.InvestmentRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.rec.Investments)
}

// Summary aggregates the finance sequences. Nothing here is stored.
type Summary struct {
	TotalIncome        decimal.Decimal                           `json:"total_income"`
	TotalExpenses      decimal.Decimal                           `json:"total_expenses"`
	Balance            decimal.Decimal                           `json:"balance"`
	TotalBudgeted      decimal.Decimal                           `json:"total_budgeted"`
	ExpensesByCategory map[models.BudgetCategory]decimal.Decimal `json:"expenses_by_category"`
	TotalSaved         decimal.Decimal                           `json:"total_saved"`
	TotalTarget        decimal.Decimal                           `json:"total_target"`
	CompletedGoals     int                                       `json:"completed_goals"`
	TotalInvested      decimal.Decimal                           `json:"total_invested"`
	TotalMaturityValue decimal.Decimal                           `json:"total_maturity_value"`
	EntryCount         int                                       `json:"entry_count"`
	GoalCount          int                                       `json:"goal_count"`
	InvestmentCount    int                                       `json:"investment_count"`
}

// Summary sums budget entries, goals and investments.
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec := e.rec

	s := Summary{
		ExpensesByCategory: make(map[models.BudgetCategory]decimal.Decimal),
		EntryCount:         len(rec.BudgetEntries),
		GoalCount:          len(rec.SavingsGoals),
		InvestmentCount:    len(rec.Investments),
	}
	for _, entry := range rec.BudgetEntries {
		s.TotalBudgeted = s.TotalBudgeted.Add(entry.Amount)
		if entry.Kind == models.EntryKindIncome {
			s.TotalIncome = s.TotalIncome.Add(entry.Amount)
			continue
		}
		s.TotalExpenses = s.TotalExpenses.Add(entry.Amount)
		s.ExpensesByCategory[entry.Category] = s.ExpensesByCategory[entry.Category].Add(entry.Amount)
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)

	for _, g := range rec.SavingsGoals {
		s.TotalSaved = s.TotalSaved.Add(g.CurrentAmount)
		s.TotalTarget = s.TotalTarget.Add(g.TargetAmount)
		if g.IsComplete() {
			s.CompletedGoals++
		}
	}
	for _, inv := range rec.Investments {
		s.TotalInvested = s.TotalInvested.Add(inv.TotalInvested())
		s.TotalMaturityValue = s.TotalMaturityValue.Add(inv.MaturityValue)
	}
	return s
}

package models

import (
	"slices"

	"cloud.google.com/go/civil"
)

// ProgressRecord is the single mutable aggregate owned by the progression
// engine. Its JSON form is the snapshot written to the store.
type ProgressRecord struct {
	Experience            int         `json:"experience"`
	Level                 int         `json:"level"`
	ExperienceToNextLevel int         `json:"experience_to_next_level"`
	StreakDays            int         `json:"streak_days"`
	LastActiveDate        *civil.Date `json:"last_active_date"`

	// Sets, stored as duplicate-free lists in unlock order.
	UnlockedAchievementIDs []string `json:"unlocked_achievement_ids"`
	CompletedChallengeIDs  []string `json:"completed_challenge_ids"`

	BudgetEntries []BudgetEntry      `json:"budget_entries"`
	SavingsGoals  []SavingsGoal      `json:"savings_goals"`
	Investments   []InvestmentRecord `json:"investments"`
}

// NewProgressRecord returns the zero-value record used on first run.
// Level and distance are filled in by the engine from its level table.
func NewProgressRecord() *ProgressRecord {
	return &ProgressRecord{
		Level:                  1,
		UnlockedAchievementIDs: []string{},
		CompletedChallengeIDs:  []string{},
		BudgetEntries:          []BudgetEntry{},
		SavingsGoals:           []SavingsGoal{},
		Investments:            []InvestmentRecord{},
	}
}

// HasAchievement reports whether the achievement id is unlocked.
func (r *ProgressRecord) HasAchievement(id string) bool {
	return slices.Contains(r.UnlockedAchievementIDs, id)
}

// HasCompletedChallenge reports whether the challenge id is completed.
func (r *ProgressRecord) HasCompletedChallenge(id string) bool {
	return slices.Contains(r.CompletedChallengeIDs, id)
}

// Normalize replaces nil collections with empty ones so that a record decoded
// from an older or hand-edited snapshot behaves like a fresh one.
func (r *ProgressRecord) Normalize() {
	if r.Level < 1 {
		r.Level = 1
	}
	if r.UnlockedAchievementIDs == nil {
		r.UnlockedAchievementIDs = []string{}
	}
	if r.CompletedChallengeIDs == nil {
		r.CompletedChallengeIDs = []string{}
	}
	if r.BudgetEntries == nil {
		r.BudgetEntries = []BudgetEntry{}
	}
	if r.SavingsGoals == nil {
		r.SavingsGoals = []SavingsGoal{}
	}
	if r.Investments == nil {
		r.Investments = []InvestmentRecord{}
	}
}

// Clone returns a deep copy safe to hand out to readers.
func (r *ProgressRecord) Clone() *ProgressRecord {
	c := *r
	if r.LastActiveDate != nil {
		d := *r.LastActiveDate
		c.LastActiveDate = &d
	}
	c.UnlockedAchievementIDs = slices.Clone(r.UnlockedAchievementIDs)
	c.CompletedChallengeIDs = slices.Clone(r.CompletedChallengeIDs)
	c.BudgetEntries = slices.Clone(r.BudgetEntries)
	c.SavingsGoals = make([]SavingsGoal, len(r.SavingsGoals))
	for i, g := range r.SavingsGoals {
		c.SavingsGoals[i] = g.Clone()
	}
	c.Investments = slices.Clone(r.Investments)
	c.Normalize()
	return &c
}

package progression

// milestonesLocked unlocks the achievements that follow from the record as a
// whole. Unlocking is idempotent, so running it after every high-level
// operation is safe. finance_pro goes last because earlier rewards may push
// the level to the top.
func (e *Engine) milestonesLocked() {
	rec := e.rec
	if rec.StreakDays >= weekWarriorStreak {
		e.unlockLocked(AchievementWeekWarrior)
	}
	if len(rec.CompletedChallengeIDs) >= championChallenges {
		e.unlockLocked(AchievementChallengeChampion)
	}
	if e.usedEveryModuleLocked() {
		e.unlockLocked(AchievementSmartSpender)
	}
	if rec.Level >= financeProLevel {
		e.unlockLocked(AchievementFinancePro)
	}
}

// usedEveryModuleLocked reports whether the player has started a quiz, tracked
// a budget entry, created a savings goal, planned an investment and completed
// a challenge.
func (e *Engine) usedEveryModuleLocked() bool {
	rec := e.rec
	return rec.HasAchievement(AchievementFirstSteps) &&
		len(rec.BudgetEntries) > 0 &&
		len(rec.SavingsGoals) > 0 &&
		len(rec.Investments) > 0 &&
		len(rec.CompletedChallengeIDs) > 0
}

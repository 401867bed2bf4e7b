package progression

import (
	"slices"

	"finlearn/internal/models"
)

// Achievement ids.
const (
	AchievementFirstSteps        = "first_steps"
	AchievementPerfectScore      = "perfect_score"
	AchievementSavingsGuru       = "savings_guru"
	AchievementEarlyInvestor     = "early_investor"
	AchievementBudgetMaster      = "budget_master"
	AchievementWeekWarrior       = "week_warrior"
	AchievementSmartSpender      = "smart_spender"
	AchievementChallengeChampion = "challenge_champion"
	AchievementGoalCrusher       = "goal_crusher"
	AchievementSpeedDemon        = "speed_demon"
	AchievementFinancePro        = "finance_pro"
)

// Fixed XP rewards.
const (
	ChallengeXP     = 50
	BudgetEntryXP   = 10
	SavingsGoalXP   = 25
	DepositXP       = 10
	InvestmentXP    = 30
	CorrectAnswerXP = 10
	PerfectQuizXP   = 50
)

// Achievement thresholds.
const (
	savingsGuruGoals       = 5
	goalCrusherGoals       = 3
	earlyInvestorPlans     = 3
	budgetMasterEntries    = 7
	budgetMasterWindowDays = 7
	weekWarriorStreak      = 7
	championChallenges     = 10
	financeProLevel        = 10
)

var levels = []models.LevelThreshold{
	{Level: 1, Name: "Finance Newbie", XPRequired: 0},
	{Level: 2, Name: "Money Explorer", XPRequired: 100},
	{Level: 3, Name: "Budget Starter", XPRequired: 250},
	{Level: 4, Name: "Smart Saver", XPRequired: 500},
	{Level: 5, Name: "Investment Rookie", XPRequired: 1000},
	{Level: 6, Name: "Portfolio Builder", XPRequired: 2000},
	{Level: 7, Name: "Wealth Grower", XPRequired: 3500},
	{Level: 8, Name: "Finance Pro", XPRequired: 5000},
	{Level: 9, Name: "Money Expert", XPRequired: 7500},
	{Level: 10, Name: "Money Master", XPRequired: 10000},
}

var achievements = []models.AchievementDefinition{
	{ID: AchievementFirstSteps, Name: "First Steps", Description: "Complete your first quiz", XPReward: 50, Icon: "🎯"},
	{ID: AchievementPerfectScore, Name: "Perfect Score", Description: "Score 100% on a quiz", XPReward: 100, Icon: "⭐"},
	{ID: AchievementSavingsGuru, Name: "Savings Guru", Description: "Create 5 savings goals", XPReward: 150, Icon: "💰"},
	{ID: AchievementEarlyInvestor, Name: "Early Investor", Description: "Calculate 3 SIP investments", XPReward: 200, Icon: "📈"},
	{ID: AchievementBudgetMaster, Name: "Budget Master", Description: "Track expenses for 7 days", XPReward: 150, Icon: "📊"},
	{ID: AchievementWeekWarrior, Name: "Week Warrior", Description: "Maintain a 7-day streak", XPReward: 200, Icon: "🔥"},
	{ID: AchievementSmartSpender, Name: "Smart Spender", Description: "Complete all modules", XPReward: 300, Icon: "🎓"},
	{ID: AchievementChallengeChampion, Name: "Challenge Champion", Description: "Complete 10 challenges", XPReward: 250, Icon: "🏆"},
	{ID: AchievementGoalCrusher, Name: "Goal Crusher", Description: "Achieve 3 savings goals", XPReward: 200, Icon: "🎯"},
	{ID: AchievementSpeedDemon, Name: "Speed Demon", Description: "Complete quiz in <30s", XPReward: 25, Icon: "⚡"},
	{ID: AchievementFinancePro, Name: "Finance Pro", Description: "Reach level 10", XPReward: 500, Icon: "💎"},
}

var achievementIndex = func() map[string]models.AchievementDefinition {
	m := make(map[string]models.AchievementDefinition, len(achievements))
	for _, a := range achievements {
		m[a.ID] = a
	}
	return m
}()

var challenges = []models.ChallengeDefinition{
	{ID: "daily_budget", Title: "Track Your Expenses", Description: "Add at least one expense entry today", Group: models.ChallengeGroupDaily, DisplayXP: 25, Icon: "📊"},
	{ID: "daily_savings", Title: "Update Savings Goal", Description: "Add progress to any savings goal", Group: models.ChallengeGroupDaily, DisplayXP: 30, Icon: "💰"},
	{ID: "daily_learn", Title: "Learn About Investing", Description: "Calculate a SIP investment", Group: models.ChallengeGroupDaily, DisplayXP: 40, Icon: "📈"},
	{ID: "week_budget", Title: "Budget Master", Description: "Track expenses for 7 consecutive days", Group: models.ChallengeGroupWeekly, DisplayXP: 150, Icon: "🏆"},
	{ID: "week_savings", Title: "Savings Streak", Description: "Create 3 new savings goals this week", Group: models.ChallengeGroupWeekly, DisplayXP: 200, Icon: "🎯"},
	{ID: "week_invest", Title: "Investment Explorer", Description: "Calculate 5 different SIP scenarios", Group: models.ChallengeGroupWeekly, DisplayXP: 250, Icon: "💎"},
	{ID: "perfect_quiz", Title: "Perfect Score", Description: "Score 100% on the financial quiz", Group: models.ChallengeGroupSpecial, DisplayXP: 100, Icon: "⭐"},
	{ID: "all_modules", Title: "Complete All Modules", Description: "Complete all learning modules", Group: models.ChallengeGroupSpecial, DisplayXP: 300, Icon: "🎓"},
	{ID: "level_10", Title: "Reach Level 10", Description: "Become a Money Master", Group: models.ChallengeGroupSpecial, DisplayXP: 500, Icon: "👑"},
}

// challengeAchievements unlocks an achievement alongside a challenge.
var challengeAchievements = map[string]string{
	"perfect_quiz": AchievementPerfectScore,
}

// Levels returns the level table in ascending order.
func Levels() []models.LevelThreshold { return slices.Clone(levels) }

// AchievementCatalog returns every achievement definition in display order.
func AchievementCatalog() []models.AchievementDefinition { return slices.Clone(achievements) }

// ChallengeCatalog returns every challenge definition in display order.
func ChallengeCatalog() []models.ChallengeDefinition { return slices.Clone(challenges) }

// LookupAchievement finds an achievement definition by id.
func LookupAchievement(id string) (models.AchievementDefinition, bool) {
	a, ok := achievementIndex[id]
	return a, ok
}

// LookupChallenge finds a challenge definition by id.
func LookupChallenge(id string) (models.ChallengeDefinition, bool) {
	for _, c := range challenges {
		if c.ID == id {
			return c, true
		}
	}
	return models.ChallengeDefinition{}, false
}

// LevelFor returns the highest threshold reached by xp.
func LevelFor(xp int) models.LevelThreshold {
	return levels[levelIndex(xp)]
}

// ExperienceToNext returns the XP missing to reach the level after the one
// xp falls in, or 0 at the last level.
func ExperienceToNext(xp int) int {
	i := levelIndex(xp)
	if i == len(levels)-1 {
		return 0
	}
	return levels[i+1].XPRequired - xp
}

func levelIndex(xp int) int {
	idx := 0
	for i, l := range levels {
		if xp >= l.XPRequired {
			idx = i
		}
	}
	return idx
}

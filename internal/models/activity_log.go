package models

// Activity actions recorded by the progression engine.
const (
	ActionExperienceGranted   = "EXPERIENCE_GRANTED"
	ActionLevelUp             = "LEVEL_UP"
	ActionAchievementUnlocked = "ACHIEVEMENT_UNLOCKED"
	ActionChallengeCompleted  = "CHALLENGE_COMPLETED"
	ActionStreakUpdated       = "STREAK_UPDATED"
	ActionBudgetEntryAdded    = "BUDGET_ENTRY_ADDED"
	ActionSavingsGoalAdded    = "SAVINGS_GOAL_ADDED"
	ActionSavingsDeposit      = "SAVINGS_DEPOSIT"
	ActionInvestmentAdded     = "INVESTMENT_ADDED"
	ActionQuizCompleted       = "QUIZ_COMPLETED"
	ActionProgressReset       = "PROGRESS_RESET"
)

// ActivityLog journals a progression event.
type ActivityLog struct {
	Base
	Action    string `gorm:"size:64;not null;index" json:"action"`
	SubjectID string `gorm:"size:128;not null;default:''" json:"subject_id"`
	XP        int    `gorm:"not null;default:0" json:"xp"`
	Level     int    `gorm:"not null;default:1" json:"level"`
	Details   string `gorm:"type:text" json:"details,omitempty"` // JSON object
}

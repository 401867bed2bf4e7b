package models

// AchievementDefinition is a one-time unlockable reward.
type AchievementDefinition struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	XPReward    int    `json:"xp_reward" yaml:"xp_reward"`
	Icon        string `json:"icon" yaml:"icon"`
}

// LevelThreshold maps a level to the cumulative XP needed to reach it.
type LevelThreshold struct {
	Level      int    `json:"level"`
	Name       string `json:"name"`
	XPRequired int    `json:"xp_required"`
}

// ChallengeGroup buckets challenges for display.
type ChallengeGroup string

const (
	ChallengeGroupDaily   ChallengeGroup = "daily"
	ChallengeGroupWeekly  ChallengeGroup = "weekly"
	ChallengeGroupSpecial ChallengeGroup = "special"
)

// ChallengeDefinition is a completable task.
type ChallengeDefinition struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Group       ChallengeGroup `json:"group"`
	DisplayXP   int            `json:"display_xp"`
	Icon        string         `json:"icon"`
}

package services

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"finlearn/internal/market"
	"finlearn/internal/models"
	"finlearn/internal/pagination"
	"finlearn/internal/progression"
	"finlearn/internal/quiz"
)

// ProgressServicer defines the contract for the player's progress. It is
// satisfied by *progression.Engine.
type ProgressServicer interface {
	Today() civil.Date

	Record() *models.ProgressRecord
	Profile() progression.Profile
	Achievements() []progression.AchievementStatus
	Challenges() []progression.ChallengeStatus
	Summary() progression.Summary

	GrantExperience(amount int) (progression.XPResult, error)
	UnlockAchievement(id string) (bool, error)
	CompleteChallenge(id string) (bool, error)
	RecordActivity(today civil.Date) error
	Reset() error

	AddBudgetEntry(in models.BudgetEntryInput) (models.BudgetEntry, error)
	BudgetEntries() []models.BudgetEntry
	CountEntriesSince(since civil.Date) int
	CheckBudgetMaster(today civil.Date) (bool, error)

	AddSavingsGoal(in models.SavingsGoalInput) (models.SavingsGoal, error)
	UpdateSavingsGoalProgress(goalID string, deposit decimal.Decimal) (models.SavingsGoal, error)
	SavingsGoals() []models.SavingsGoal
	Goal(id string) (models.SavingsGoal, error)

	AddInvestment(in models.InvestmentInput) (models.InvestmentRecord, error)
	Investments() []models.InvestmentRecord

	StartQuiz() (bool, error)
	CompleteQuiz(res quiz.Result, elapsed time.Duration) (progression.QuizOutcome, error)
}

// ActivityFilter holds optional filter parameters for listing activity.
type ActivityFilter struct {
	Action   string
	FromDate *time.Time
	ToDate   *time.Time
}

// ActivityServicer journals engine events and lists them back.
type ActivityServicer interface {
	progression.Recorder
	List(page pagination.PageRequest, filter ActivityFilter) (*pagination.PageResponse[models.ActivityLog], error)
}

// MarketServicer defines the contract for market data.
type MarketServicer interface {
	Funds(ctx context.Context) market.FundList
	Leaderboard(ctx context.Context, limit int, self market.Player) market.Board
}

var (
	_ ProgressServicer = (*progression.Engine)(nil)
	_ MarketServicer   = (*market.Service)(nil)
)

package progression

import (
	"time"

	"finlearn/internal/models"
	"finlearn/internal/quiz"
)

// SpeedBonusLimit is the quiz duration under which speed_demon unlocks.
const SpeedBonusLimit = 30 * time.Second

// QuizOutcome is what a scored quiz earned.
type QuizOutcome struct {
	Result    quiz.Result `json:"result"`
	XPEarned  int         `json:"xp_earned"`
	Unlocked  []string    `json:"unlocked"`
	LeveledUp bool        `json:"leveled_up"`
	Level     int         `json:"level"`
}

// StartQuiz unlocks first_steps on the first quiz.
func (e *Engine) StartQuiz() (bool, error) {
	var unlocked bool
	err := e.update(func(rec *models.ProgressRecord) error {
		unlocked = e.unlockLocked(AchievementFirstSteps)
		e.milestonesLocked()
		return nil
	})
	return unlocked, err
}

// CompleteQuiz rewards a scored quiz: CorrectAnswerXP per correct answer, and
// for a perfect sheet perfect_score plus PerfectQuizXP. A quiz finished in
// under SpeedBonusLimit unlocks speed_demon. elapsed comes from the caller and
// is trusted.
func (e *Engine) CompleteQuiz(res quiz.Result, elapsed time.Duration) (QuizOutcome, error) {
	switch {
	case res.Total <= 0:
		return QuizOutcome{}, invalid("quiz result has no questions")
	case res.Correct < 0 || res.Correct > res.Total:
		return QuizOutcome{}, invalid("correct answers out of range")
	case elapsed < 0:
		return QuizOutcome{}, invalid("elapsed time must not be negative")
	}

	out := QuizOutcome{Result: res, Unlocked: []string{}}
	err := e.update(func(rec *models.ProgressRecord) error {
		startXP, startLevel := rec.Experience, rec.Level
		unlock := func(id string) {
			if e.unlockLocked(id) {
				out.Unlocked = append(out.Unlocked, id)
			}
		}

		if res.Correct > 0 {
			e.grantLocked(CorrectAnswerXP*res.Correct, "quiz_answers")
		}
		if res.Correct == res.Total {
			unlock(AchievementPerfectScore)
			e.grantLocked(PerfectQuizXP, "quiz_perfect_bonus")
		}
		if elapsed < SpeedBonusLimit {
			unlock(AchievementSpeedDemon)
		}
		e.dirty = true
		e.note(models.ActionQuizCompleted, "", rec.Experience-startXP, map[string]any{
			"correct":    res.Correct,
			"total":      res.Total,
			"elapsed_ms": elapsed.Milliseconds(),
		})
		e.milestonesLocked()

		out.XPEarned = rec.Experience - startXP
		out.Level = rec.Level
		out.LeveledUp = rec.Level > startLevel
		return nil
	})
	return out, err
}

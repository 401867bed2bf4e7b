package progression

import (
	"cloud.google.com/go/civil"

	"finlearn/internal/models"
)

// StreakState classifies the last active date relative to today.
type StreakState int

const (
	NoHistory StreakState = iota
	ActiveToday
	ActiveYesterday
	Lapsed
	// FromFuture means the last active date is after today, e.g. after a
	// clock change. Such calls are ignored.
	FromFuture
)

func (s StreakState) String() string {
	switch s {
	case NoHistory:
		return "no_history"
	case ActiveToday:
		return "active_today"
	case ActiveYesterday:
		return "active_yesterday"
	case Lapsed:
		return "lapsed"
	case FromFuture:
		return "from_future"
	}
	return "unknown"
}

// ClassifyStreak returns the streak state of last as seen on today.
func ClassifyStreak(last *civil.Date, today civil.Date) StreakState {
	switch {
	case last == nil:
		return NoHistory
	case *last == today:
		return ActiveToday
	case today.Before(*last):
		return FromFuture
	case today.DaysSince(*last) == 1:
		return ActiveYesterday
	default:
		return Lapsed
	}
}

// RecordActivity advances the daily streak. It is a no-op when today was
// already recorded.
func (e *Engine) RecordActivity(today civil.Date) error {
	if !today.IsValid() {
		return invalid("activity date is not a valid calendar date")
	}
	return e.update(func(rec *models.ProgressRecord) error {
		state := ClassifyStreak(rec.LastActiveDate, today)
		switch state {
		case ActiveToday, FromFuture:
			return nil
		case ActiveYesterday:
			rec.StreakDays++
		default:
			rec.StreakDays = 1
		}
		d := today
		rec.LastActiveDate = &d
		e.dirty = true
		e.note(models.ActionStreakUpdated, today.String(), 0, map[string]any{
			"streak_days": rec.StreakDays,
			"transition":  state.String(),
		})
		e.milestonesLocked()
		return nil
	})
}

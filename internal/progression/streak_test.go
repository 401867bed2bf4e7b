package progression

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"finlearn/internal/testutil"
)

func TestClassifyStreak(t *testing.T) {
	day0 := testutil.Date(2024, time.February, 28)
	tests := []struct {
		name  string
		last  *civil.Date
		today civil.Date
		want  StreakState
	}{
		{"no_history", nil, day0, NoHistory},
		{"same_day", &day0, day0, ActiveToday},
		{"next_day_across_leap_day", &day0, testutil.Date(2024, time.February, 29), ActiveYesterday},
		{"gap_of_two", &day0, day0.AddDays(2), Lapsed},
		{"clock_went_back", &day0, day0.AddDays(-1), FromFuture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStreak(tt.last, tt.today); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRecordActivity(t *testing.T) {
	day0 := testutil.Date(2024, time.March, 1)

	t.Run("first_activity", func(t *testing.T) {
		f := newFixture(t)
		testutil.AssertNoError(t, f.engine.RecordActivity(day0))

		rec := f.engine.Record()
		if rec.StreakDays != 1 || rec.LastActiveDate == nil || *rec.LastActiveDate != day0 {
			t.Errorf("unexpected streak state: days=%d last=%v", rec.StreakDays, rec.LastActiveDate)
		}
	})

	t.Run("consecutive_then_lapsed", func(t *testing.T) {
		f := newFixture(t)
		testutil.AssertNoError(t, f.engine.RecordActivity(day0))
		testutil.AssertNoError(t, f.engine.RecordActivity(day0.AddDays(1)))

		if got := f.engine.Record().StreakDays; got != 2 {
			t.Fatalf("expected streak 2, got %d", got)
		}

		testutil.AssertNoError(t, f.engine.RecordActivity(day0.AddDays(4)))
		rec := f.engine.Record()
		if rec.StreakDays != 1 {
			t.Errorf("expected streak reset to 1, got %d", rec.StreakDays)
		}
		if *rec.LastActiveDate != day0.AddDays(4) {
			t.Errorf("expected last active %s, got %s", day0.AddDays(4), rec.LastActiveDate)
		}
	})

	t.Run("same_day_is_noop", func(t *testing.T) {
		f := newFixture(t)
		testutil.AssertNoError(t, f.engine.RecordActivity(day0))
		saves := f.store.Saves()

		testutil.AssertNoError(t, f.engine.RecordActivity(day0))
		testutil.AssertNoError(t, f.engine.RecordActivity(day0))

		if got := f.engine.Record().StreakDays; got != 1 {
			t.Errorf("expected streak 1, got %d", got)
		}
		if f.store.Saves() != saves {
			t.Error("repeat activity on the same day should not save")
		}
	})

	t.Run("earlier_date_ignored", func(t *testing.T) {
		f := newFixture(t)
		testutil.AssertNoError(t, f.engine.RecordActivity(day0))
		testutil.AssertNoError(t, f.engine.RecordActivity(day0.AddDays(-3)))

		rec := f.engine.Record()
		if rec.StreakDays != 1 || *rec.LastActiveDate != day0 {
			t.Errorf("expected unchanged streak, got days=%d last=%s", rec.StreakDays, rec.LastActiveDate)
		}
	})

	t.Run("invalid_date", func(t *testing.T) {
		f := newFixture(t)
		err := f.engine.RecordActivity(civil.Date{Year: 2024, Month: time.February, Day: 30})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("week_warrior_after_seven_days", func(t *testing.T) {
		f := newFixture(t)
		for i := 0; i < 6; i++ {
			testutil.AssertNoError(t, f.engine.RecordActivity(day0.AddDays(i)))
		}
		if f.engine.Record().HasAchievement(AchievementWeekWarrior) {
			t.Fatal("six days should not unlock week_warrior")
		}

		testutil.AssertNoError(t, f.engine.RecordActivity(day0.AddDays(6)))
		rec := f.engine.Record()
		if !rec.HasAchievement(AchievementWeekWarrior) {
			t.Error("expected week_warrior after a 7-day streak")
		}
		if rec.Experience != 200 {
			t.Errorf("expected 200 XP from week_warrior, got %d", rec.Experience)
		}
	})
}

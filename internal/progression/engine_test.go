package progression

import (
	"errors"
	"math"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"finlearn/internal/logger"
	"finlearn/internal/models"
	"finlearn/internal/store"
	"finlearn/internal/testutil"
)

func init() {
	logger.Init("test")
}

type fixture struct {
	engine *Engine
	store  *store.MemoryStore
	clock  *testutil.Clock
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		store: store.NewMemoryStore(),
		clock: testutil.NewClock(2024, time.March, 1),
	}
	f.engine = f.reopen(opts...)
	return f
}

// reopen builds a new engine over the same store and clock.
func (f *fixture) reopen(opts ...Option) *Engine {
	base := []Option{WithClock(f.clock.Now), WithLocation(time.UTC)}
	return New(f.store, append(base, opts...)...)
}

func TestNew(t *testing.T) {
	t.Run("fresh_record", func(t *testing.T) {
		f := newFixture(t)
		rec := f.engine.Record()

		if rec.Experience != 0 || rec.Level != 1 || rec.ExperienceToNextLevel != 100 {
			t.Errorf("unexpected fresh record: xp=%d level=%d next=%d", rec.Experience, rec.Level, rec.ExperienceToNextLevel)
		}
		if rec.LastActiveDate != nil || rec.StreakDays != 0 {
			t.Error("expected no streak history")
		}
		if len(rec.UnlockedAchievementIDs) != 0 || len(rec.BudgetEntries) != 0 {
			t.Error("expected empty collections")
		}
		if f.store.Saves() != 0 {
			t.Errorf("loading should not save, got %d saves", f.store.Saves())
		}
	})

	t.Run("corrupt_snapshot_falls_back", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.Put([]byte("{not json"))
		e := New(s)

		if rec := e.Record(); rec.Experience != 0 || rec.Level != 1 {
			t.Errorf("expected zero record, got xp=%d level=%d", rec.Experience, rec.Level)
		}
	})

	t.Run("load_error_falls_back", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.FailLoad(errors.New("permission denied"))
		e := New(s)

		if rec := e.Record(); rec.Experience != 0 {
			t.Errorf("expected zero record, got xp=%d", rec.Experience)
		}
	})

	t.Run("level_recomputed_from_experience", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.Put([]byte(`{"experience":600,"level":1,"experience_to_next_level":5}`))
		e := New(s)

		rec := e.Record()
		if rec.Level != 4 {
			t.Errorf("expected level 4 for 600 XP, got %d", rec.Level)
		}
		if rec.ExperienceToNextLevel != 400 {
			t.Errorf("expected 400 XP to next level, got %d", rec.ExperienceToNextLevel)
		}
		if rec.BudgetEntries == nil {
			t.Error("expected missing collections to be normalized")
		}
	})
}

func TestGrantExperience(t *testing.T) {
	t.Run("level_tracks_table", func(t *testing.T) {
		f := newFixture(t)
		amounts := []int{1, 49, 50, 3, 147, 250, 499, 1, 1000, 1500, 1500, 2500, 2500, 5000}

		prevLevel, total := 1, 0
		for _, amt := range amounts {
			res, err := f.engine.GrantExperience(amt)
			testutil.AssertNoError(t, err)
			total += amt

			if res.Record.Experience != total {
				t.Fatalf("expected xp %d, got %d", total, res.Record.Experience)
			}
			if res.Level < prevLevel {
				t.Fatalf("level went down from %d to %d", prevLevel, res.Level)
			}
			if want := LevelFor(total).Level; res.Level != want {
				t.Fatalf("xp %d: expected level %d, got %d", total, want, res.Level)
			}
			if res.LeveledUp != (res.Level > prevLevel) {
				t.Fatalf("xp %d: leveled_up=%v but %d -> %d", total, res.LeveledUp, prevLevel, res.Level)
			}
			prevLevel = res.Level
		}

		rec := f.engine.Record()
		if rec.Level != 10 || rec.ExperienceToNextLevel != 0 {
			t.Errorf("expected max level with zero distance, got level=%d next=%d", rec.Level, rec.ExperienceToNextLevel)
		}
	})

	t.Run("exact_threshold", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.engine.GrantExperience(100)
		testutil.AssertNoError(t, err)

		if !res.LeveledUp || res.PreviousLevel != 1 || res.Level != 2 {
			t.Errorf("unexpected result: %+v", res)
		}
		if res.Record.ExperienceToNextLevel != 150 {
			t.Errorf("expected 150 to next level, got %d", res.Record.ExperienceToNextLevel)
		}
	})

	t.Run("rejects_non_positive", func(t *testing.T) {
		f := newFixture(t)
		for _, amt := range []int{0, -5} {
			_, err := f.engine.GrantExperience(amt)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
		if f.engine.Record().Experience != 0 || f.store.Saves() != 0 {
			t.Error("rejected grant should not change or save state")
		}
	})

	t.Run("experience_ceiling", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.GrantExperience(MaxExperience - 10)
		testutil.AssertNoError(t, err)
		saves := f.store.Saves()

		_, err = f.engine.GrantExperience(100)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = f.engine.GrantExperience(math.MaxInt)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		rec := f.engine.Record()
		if rec.Experience != MaxExperience-10 || rec.Level != 10 {
			t.Errorf("rejected grants should not change the record, got xp=%d level=%d", rec.Experience, rec.Level)
		}
		if f.store.Saves() != saves {
			t.Error("rejected grants should not save")
		}

		_, err = f.engine.GrantExperience(10)
		testutil.AssertNoError(t, err)
		if xp := f.engine.Record().Experience; xp != MaxExperience {
			t.Errorf("expected xp %d, got %d", MaxExperience, xp)
		}
	})

	t.Run("rewards_stop_at_ceiling", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.GrantExperience(MaxExperience - 1)
		testutil.AssertNoError(t, err)

		completed, err := f.engine.CompleteChallenge("daily_budget")
		testutil.AssertNoError(t, err)
		if !completed {
			t.Fatal("expected challenge to complete")
		}
		if xp := f.engine.Record().Experience; xp != MaxExperience {
			t.Errorf("expected xp capped at %d, got %d", MaxExperience, xp)
		}

		reopened := f.reopen().Record()
		if reopened.Experience != MaxExperience || reopened.Level != 10 {
			t.Errorf("expected capped record to survive reload, got xp=%d level=%d", reopened.Experience, reopened.Level)
		}
	})
}

func TestUnlockAchievement(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.engine.UnlockAchievement(AchievementPerfectScore)
		testutil.AssertNoError(t, err)
		second, err := f.engine.UnlockAchievement(AchievementPerfectScore)
		testutil.AssertNoError(t, err)

		if !first || second {
			t.Errorf("expected (true, false), got (%v, %v)", first, second)
		}
		rec := f.engine.Record()
		if rec.Experience != 100 {
			t.Errorf("expected reward granted once (100), got %d", rec.Experience)
		}
		if len(rec.UnlockedAchievementIDs) != 1 {
			t.Errorf("expected 1 unlocked achievement, got %v", rec.UnlockedAchievementIDs)
		}
		if f.store.Saves() != 1 {
			t.Errorf("repeat unlock should not save, got %d saves", f.store.Saves())
		}
	})

	t.Run("unknown_id", func(t *testing.T) {
		f := newFixture(t)
		ok, err := f.engine.UnlockAchievement("moon_landing")
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected unknown achievement to be ignored")
		}
	})
}

func TestCompleteChallenge(t *testing.T) {
	t.Run("first_and_repeat", func(t *testing.T) {
		f := newFixture(t)

		ok, err := f.engine.CompleteChallenge("daily_budget")
		testutil.AssertNoError(t, err)
		if !ok {
			t.Fatal("expected first completion to succeed")
		}
		ok, err = f.engine.CompleteChallenge("daily_budget")
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected repeat completion to return false")
		}
		if xp := f.engine.Record().Experience; xp != ChallengeXP {
			t.Errorf("expected %d XP, got %d", ChallengeXP, xp)
		}
	})

	t.Run("unknown_challenge", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.CompleteChallenge("climb_everest")
		testutil.AssertAppError(t, err, "CHALLENGE_NOT_FOUND")
	})

	t.Run("perfect_quiz_unlocks_perfect_score", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.CompleteChallenge("perfect_quiz")
		testutil.AssertNoError(t, err)

		rec := f.engine.Record()
		if !rec.HasAchievement(AchievementPerfectScore) {
			t.Error("expected perfect_score to unlock")
		}
		if rec.Experience != ChallengeXP+100 {
			t.Errorf("expected %d XP, got %d", ChallengeXP+100, rec.Experience)
		}
	})

	t.Run("whole_catalog_is_not_champion", func(t *testing.T) {
		f := newFixture(t)
		for _, c := range ChallengeCatalog() {
			_, err := f.engine.CompleteChallenge(c.ID)
			testutil.AssertNoError(t, err)
		}
		if f.engine.Record().HasAchievement(AchievementChallengeChampion) {
			t.Fatal("nine challenges should not unlock challenge_champion")
		}
	})
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.GrantExperience(300)
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, f.engine.Reset())

	if rec := f.engine.Record(); rec.Experience != 0 || rec.Level != 1 {
		t.Errorf("expected zero record after reset, got xp=%d level=%d", rec.Experience, rec.Level)
	}
	if rec := f.reopen().Record(); rec.Experience != 0 {
		t.Errorf("expected reset to be persisted, got xp=%d", rec.Experience)
	}
}

func TestSaveFailure(t *testing.T) {
	f := newFixture(t)
	f.store.FailSave(errors.New("disk full"))

	entry, err := f.engine.AddBudgetEntry(models.BudgetEntryInput{
		Category:    models.BudgetCategoryFood,
		Amount:      testutil.Dec("250"),
		Description: "Groceries",
	})
	testutil.AssertNotPersisted(t, err)
	if entry.ID == "" {
		t.Error("expected the entry to be returned despite the failed save")
	}
	if rec := f.engine.Record(); len(rec.BudgetEntries) != 1 || rec.Experience != BudgetEntryXP {
		t.Error("in-memory state should keep the change")
	}

	f.store.FailSave(nil)
	_, err = f.engine.GrantExperience(5)
	testutil.AssertNoError(t, err)

	if rec := f.reopen().Record(); len(rec.BudgetEntries) != 1 || rec.Experience != BudgetEntryXP+5 {
		t.Errorf("next successful save should carry both changes, got entries=%d xp=%d", len(rec.BudgetEntries), rec.Experience)
	}
}

func TestRoundTrip(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	testutil.AssertNoError(t, e.RecordActivity(f.clock.Today()))
	_, err := e.StartQuiz()
	testutil.AssertNoError(t, err)
	_, err = e.AddBudgetEntry(models.BudgetEntryInput{Category: models.BudgetCategoryBills, Amount: testutil.Dec("1200.50"), Description: "Rent share", Kind: models.EntryKindExpense})
	testutil.AssertNoError(t, err)
	_, err = e.AddBudgetEntry(models.BudgetEntryInput{Amount: testutil.Dec("45000"), Description: "Salary", Kind: models.EntryKindIncome})
	testutil.AssertNoError(t, err)
	deadline := testutil.Date(2025, time.January, 31)
	goal, err := e.AddSavingsGoal(models.SavingsGoalInput{Name: "Laptop", TargetAmount: testutil.Dec("60000"), Deadline: &deadline})
	testutil.AssertNoError(t, err)
	_, err = e.UpdateSavingsGoalProgress(goal.ID, testutil.Dec("1500.25"))
	testutil.AssertNoError(t, err)
	_, err = e.AddInvestment(models.InvestmentInput{MonthlyAmount: testutil.Dec("5000"), Years: testutil.Dec("10"), AnnualReturnPercent: testutil.Dec("12")})
	testutil.AssertNoError(t, err)
	_, err = e.CompleteChallenge("daily_learn")
	testutil.AssertNoError(t, err)

	before := e.Record()
	after := f.reopen().Record()

	if diff := cmp.Diff(before, after, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("record changed across save/load (-before +after):\n%s", diff)
	}

	data, err := Encode(before)
	testutil.AssertNoError(t, err)
	decoded, err := Decode(data)
	testutil.AssertNoError(t, err)
	if diff := cmp.Diff(before, decoded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("encode/decode not lossless (-want +got):\n%s", diff)
	}
}

func TestRecorder(t *testing.T) {
	var events []Event
	f := newFixture(t, WithRecorder(RecorderFunc(func(evt Event) {
		events = append(events, evt)
	})))

	_, err := f.engine.GrantExperience(150)
	testutil.AssertNoError(t, err)

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(events), events)
	}
	if events[0].Action != models.ActionExperienceGranted || events[0].XP != 150 {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Action != models.ActionLevelUp || events[1].Level != 2 {
		t.Errorf("unexpected second event: %+v", events[1])
	}

	events = nil
	_, _ = f.engine.GrantExperience(-1)
	if len(events) != 0 {
		t.Errorf("rejected operation should not emit events, got %+v", events)
	}
}

func TestRecorderOrderUnderConcurrency(t *testing.T) {
	var seen []int
	f := newFixture(t, WithRecorder(RecorderFunc(func(evt Event) {
		if evt.Action != models.ActionExperienceGranted {
			return
		}
		runtime.Gosched()
		seen = append(seen, evt.Details["experience"].(int))
	})))

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.engine.GrantExperience(1); err != nil {
				t.Errorf("grant: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers {
		t.Fatalf("expected %d events, got %d", workers, len(seen))
	}
	for i, xp := range seen {
		if xp != i+1 {
			t.Fatalf("event %d carries experience %d, want %d: %v", i, xp, i+1, seen)
		}
	}
}

// Package progression owns the player's progress record: experience and
// levels, streaks, achievements, challenges, budget entries, savings goals
// and SIP plans. Every change is written through to a snapshot store.
//
// Mutations are serialized by a mutex. A failed save never rolls back the
// in-memory change; the operation returns its normal result together with an
// error matching errors.ErrStateNotPersisted.
package progression

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	apperrors "finlearn/internal/errors"
	"finlearn/internal/logger"
	"finlearn/internal/models"
	"finlearn/internal/store"
)

// Engine is the single writer of a ProgressRecord.
type Engine struct {
	mu sync.Mutex
	// dispatchMu is taken before mu is released so events reach the
	// recorder in mutation order.
	dispatchMu sync.Mutex

	store    store.Store
	recorder Recorder
	now      func() time.Time
	loc      *time.Location

	rec     *models.ProgressRecord
	dirty   bool
	pending []Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock used for timestamps and "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the time zone that decides calendar days.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithRecorder journals engine events.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// New loads the record from s. A missing, unreadable or corrupt snapshot is
// logged and replaced by a fresh record.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		recorder: NoopRecorder{},
		now:      time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rec = e.load()
	return e
}

func (e *Engine) load() *models.ProgressRecord {
	data, found, err := e.store.Load()
	if err != nil {
		logger.Get().Warnw("failed to load progress snapshot, starting fresh", "error", err)
		return newRecord()
	}
	if !found {
		return newRecord()
	}
	rec, err := Decode(data)
	if err != nil {
		logger.Get().Warnw("corrupt progress snapshot, starting fresh", "error", err)
		return newRecord()
	}
	return rec
}

func newRecord() *models.ProgressRecord {
	rec := models.NewProgressRecord()
	rec.ExperienceToNextLevel = ExperienceToNext(0)
	return rec
}

// Encode serializes a record into the snapshot format.
func Encode(rec *models.ProgressRecord) ([]byte, error) {
	return json.Marshal(rec)
}

// Decode parses a snapshot. The cached level fields are recomputed from
// experience so that a hand-edited snapshot cannot break the level table.
func Decode(data []byte) (*models.ProgressRecord, error) {
	rec := models.NewProgressRecord()
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("decode progress snapshot: %w", err)
	}
	if rec.Experience < 0 {
		return nil, fmt.Errorf("decode progress snapshot: negative experience %d", rec.Experience)
	}
	if rec.Experience > MaxExperience {
		rec.Experience = MaxExperience
	}
	if rec.StreakDays < 0 {
		rec.StreakDays = 0
	}
	rec.Normalize()
	rec.Level = LevelFor(rec.Experience).Level
	rec.ExperienceToNextLevel = ExperienceToNext(rec.Experience)
	return rec, nil
}

// Today returns the current calendar day in the engine's location.
func (e *Engine) Today() civil.Date {
	return civil.DateOf(e.now().In(e.loc))
}

// Location returns the time zone used for calendar days.
func (e *Engine) Location() *time.Location { return e.loc }

// update runs fn under the lock. fn must validate before mutating: if it
// returns an error nothing has changed. When fn marked the record dirty it is
// saved and queued events are dispatched once the lock is released, in the
// order the mutations happened. Recorders must not mutate the engine.
func (e *Engine) update(fn func(rec *models.ProgressRecord) error) error {
	e.mu.Lock()
	if err := fn(e.rec); err != nil {
		e.dirty = false
		e.pending = nil
		e.mu.Unlock()
		return err
	}

	var saveErr error
	if e.dirty {
		saveErr = e.persistLocked()
	}
	events := e.pending
	e.dirty = false
	e.pending = nil
	if len(events) == 0 {
		e.mu.Unlock()
		return saveErr
	}

	e.dispatchMu.Lock()
	e.mu.Unlock()
	defer e.dispatchMu.Unlock()
	for _, evt := range events {
		e.recorder.Record(evt)
	}
	return saveErr
}

func (e *Engine) persistLocked() error {
	data, err := Encode(e.rec)
	if err == nil {
		err = e.store.Save(data)
	}
	if err != nil {
		logger.Get().Errorw("failed to persist progress", "error", err, "experience", e.rec.Experience)
		return apperrors.Wrap(apperrors.ErrStateNotPersisted, err)
	}
	return nil
}

func (e *Engine) note(action, subject string, xp int, details map[string]any) {
	e.pending = append(e.pending, Event{
		Action:    action,
		SubjectID: subject,
		XP:        xp,
		Level:     e.rec.Level,
		Details:   details,
	})
}

// XPResult is the outcome of an experience grant.
type XPResult struct {
	Record        *models.ProgressRecord `json:"record"`
	LeveledUp     bool                   `json:"leveled_up"`
	PreviousLevel int                    `json:"previous_level"`
	Level         int                    `json:"level"`
}

// MaxExperience is the experience ceiling. Manual grants that would pass it
// are rejected; rewards earned in play stop at it.
const MaxExperience = 1_000_000_000

// GrantExperience adds amount XP and recomputes the level.
func (e *Engine) GrantExperience(amount int) (XPResult, error) {
	if amount <= 0 {
		return XPResult{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "experience amount must be positive")
	}
	if amount > MaxExperience {
		return XPResult{}, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("experience amount must not exceed %d", MaxExperience))
	}
	var res XPResult
	err := e.update(func(rec *models.ProgressRecord) error {
		if amount > MaxExperience-rec.Experience {
			return apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("experience is capped at %d, %d left", MaxExperience, MaxExperience-rec.Experience))
		}
		res.PreviousLevel = rec.Level
		e.grantLocked(amount, "manual")
		res.Level = rec.Level
		res.LeveledUp = res.Level > res.PreviousLevel
		res.Record = rec.Clone()
		return nil
	})
	return res, err
}

// grantLocked adds XP, saturating at MaxExperience, and reports whether the
// level went up.
func (e *Engine) grantLocked(amount int, reason string) bool {
	rec := e.rec
	prev := rec.Level
	if room := MaxExperience - rec.Experience; amount > room {
		amount = room
	}
	rec.Experience += amount
	rec.Level = LevelFor(rec.Experience).Level
	rec.ExperienceToNextLevel = ExperienceToNext(rec.Experience)
	e.dirty = true

	e.note(models.ActionExperienceGranted, reason, amount, map[string]any{"experience": rec.Experience})
	if rec.Level > prev {
		e.note(models.ActionLevelUp, LevelFor(rec.Experience).Name, 0, map[string]any{"previous_level": prev})
		return true
	}
	return false
}

// UnlockAchievement records the achievement and grants its reward. It returns
// false without changes for unknown or already unlocked ids.
func (e *Engine) UnlockAchievement(id string) (bool, error) {
	var unlocked bool
	err := e.update(func(rec *models.ProgressRecord) error {
		unlocked = e.unlockLocked(id)
		return nil
	})
	return unlocked, err
}

func (e *Engine) unlockLocked(id string) bool {
	def, ok := achievementIndex[id]
	if !ok || e.rec.HasAchievement(id) {
		return false
	}
	e.rec.UnlockedAchievementIDs = append(e.rec.UnlockedAchievementIDs, id)
	e.dirty = true
	e.note(models.ActionAchievementUnlocked, id, def.XPReward, nil)
	e.grantLocked(def.XPReward, "achievement:"+id)
	return true
}

// CompleteChallenge marks a catalog challenge complete and grants the fixed
// challenge reward. Repeats return false.
func (e *Engine) CompleteChallenge(id string) (bool, error) {
	if _, ok := LookupChallenge(id); !ok {
		return false, apperrors.ErrChallengeNotFound
	}
	var completed bool
	err := e.update(func(rec *models.ProgressRecord) error {
		if rec.HasCompletedChallenge(id) {
			return nil
		}
		rec.CompletedChallengeIDs = append(rec.CompletedChallengeIDs, id)
		e.dirty = true
		completed = true
		e.note(models.ActionChallengeCompleted, id, ChallengeXP, nil)
		e.grantLocked(ChallengeXP, "challenge:"+id)
		if linked, ok := challengeAchievements[id]; ok {
			e.unlockLocked(linked)
		}
		e.milestonesLocked()
		return nil
	})
	return completed, err
}

// Reset replaces the record with a fresh one and saves it.
func (e *Engine) Reset() error {
	return e.update(func(rec *models.ProgressRecord) error {
		e.rec = newRecord()
		e.dirty = true
		e.note(models.ActionProgressReset, "", 0, map[string]any{"previous_experience": rec.Experience})
		return nil
	})
}

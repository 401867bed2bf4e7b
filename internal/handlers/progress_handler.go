package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finlearn/internal/errors"
	"finlearn/internal/progression"
	"finlearn/internal/services"
)

// ProgressHandler handles experience, streak, achievement and challenge requests.
type ProgressHandler struct {
	progress services.ProgressServicer
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progress services.ProgressServicer) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// GrantExperienceRequest represents the request payload for granting XP.
type GrantExperienceRequest struct {
	Amount int `json:"amount" binding:"required,gt=0,lte=1000000000"`
}

// RecordActivityRequest represents the request payload for recording a visit.
// An empty date means today.
type RecordActivityRequest struct {
	Date string `json:"date" binding:"omitempty,civil_date"`
}

// GetProfile returns the level summary.
// @Summary     Get profile
// @Description Get level, experience, streak and completion counts
// @Tags        progress
// @Produce     json
// @Success     200 {object} progression.Profile "Profile"
// @Router      /profile [get]
func (h *ProgressHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profile": h.progress.Profile()})
}

// GetProgress returns the full progress record.
// @Summary     Get progress record
// @Description Get the complete persisted progress record
// @Tags        progress
// @Produce     json
// @Success     200 {object} models.ProgressRecord "Progress record"
// @Router      /progress [get]
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"progress": h.progress.Record()})
}

// GrantExperience adds experience points.
// @Summary     Grant experience
// @Description Add experience points and recompute the level
// @Tags        progress
// @Accept      json
// @Produce     json
// @Param       request body GrantExperienceRequest true "Amount"
// @Success     200 {object} progression.XPResult "Grant result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /progress/xp [post]
func (h *ProgressHandler) GrantExperience(c *gin.Context) {
	var req GrantExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	res, err := h.progress.GrantExperience(req.Amount)
	if failed(err) {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"experience":     res.Record.Experience,
		"level":          res.Level,
		"previous_level": res.PreviousLevel,
		"leveled_up":     res.LeveledUp,
	}, err)
}

// RecordActivity updates the daily streak.
// @Summary     Record activity
// @Description Record a visit for the streak. Defaults to today.
// @Tags        progress
// @Accept      json
// @Produce     json
// @Param       request body RecordActivityRequest false "Visit date"
// @Success     200 {object} map[string]interface{} "Streak"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /progress/activity [post]
func (h *ProgressHandler) RecordActivity(c *gin.Context) {
	var req RecordActivityRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, invalidInput(err))
			return
		}
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	today := h.progress.Today()
	if date != nil {
		today = *date
	}

	err = h.progress.RecordActivity(today)
	if failed(err) {
		respondWithError(c, err)
		return
	}
	rec := h.progress.Record()
	respond(c, http.StatusOK, gin.H{
		"streak_days":      rec.StreakDays,
		"last_active_date": rec.LastActiveDate,
	}, err)
}

// ResetProgress clears all progress.
// @Summary     Reset progress
// @Description Replace the record with a fresh one
// @Tags        progress
// @Produce     json
// @Success     200 {object} map[string]interface{} "Reset"
// @Router      /progress/reset [post]
func (h *ProgressHandler) ResetProgress(c *gin.Context) {
	err := h.progress.Reset()
	respond(c, http.StatusOK, gin.H{"message": "Progress reset"}, err)
}

// GetAchievements lists the catalog with unlock flags.
// @Summary     Get achievements
// @Tags        achievements
// @Produce     json
// @Success     200 {array} progression.AchievementStatus "Achievements"
// @Router      /achievements [get]
func (h *ProgressHandler) GetAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": h.progress.Achievements()})
}

// UnlockAchievement unlocks a catalog achievement.
// @Summary     Unlock achievement
// @Tags        achievements
// @Produce     json
// @Param       id path string true "Achievement ID"
// @Success     200 {object} map[string]interface{} "Unlock result"
// @Failure     404 {object} ErrorResponse "Achievement not found"
// @Router      /achievements/{id}/unlock [post]
func (h *ProgressHandler) UnlockAchievement(c *gin.Context) {
	id := c.Param("id")
	if _, ok := progression.LookupAchievement(id); !ok {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, "Achievement not found"))
		return
	}

	unlocked, err := h.progress.UnlockAchievement(id)
	respond(c, http.StatusOK, gin.H{
		"achievement_id": id,
		"unlocked":       unlocked,
		"experience":     h.progress.Record().Experience,
	}, err)
}

// GetChallenges lists the challenge catalog with completion flags.
// @Summary     Get challenges
// @Tags        challenges
// @Produce     json
// @Success     200 {array} progression.ChallengeStatus "Challenges"
// @Router      /challenges [get]
func (h *ProgressHandler) GetChallenges(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"challenges": h.progress.Challenges()})
}

// CompleteChallenge completes a catalog challenge.
// @Summary     Complete challenge
// @Tags        challenges
// @Produce     json
// @Param       id path string true "Challenge ID"
// @Success     200 {object} map[string]interface{} "Completion result"
// @Failure     404 {object} ErrorResponse "Challenge not found"
// @Router      /challenges/{id}/complete [post]
func (h *ProgressHandler) CompleteChallenge(c *gin.Context) {
	id := c.Param("id")
	completed, err := h.progress.CompleteChallenge(id)
	if failed(err) {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"challenge_id": id,
		"completed":    completed,
		"experience":   h.progress.Record().Experience,
	}, err)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finlearn/internal/errors"
	"finlearn/internal/quiz"
	"finlearn/internal/services"
)

// QuizHandler serves the quiz and rewards finished attempts.
type QuizHandler struct {
	progress services.ProgressServicer
	bank     *quiz.Bank
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(progress services.ProgressServicer, bank *quiz.Bank) *QuizHandler {
	return &QuizHandler{progress: progress, bank: bank}
}

// SubmitQuizRequest represents a finished quiz attempt. Answers are option
// indexes in question order.
type SubmitQuizRequest struct {
	Answers        []int   `json:"answers" binding:"required,dive,gte=0"`
	ElapsedSeconds float64 `json:"elapsed_seconds" binding:"gte=0"`
}

// GetQuestions lists the questions without answers.
// @Summary     Get quiz questions
// @Tags        quiz
// @Produce     json
// @Success     200 {array} quiz.PublicQuestion "Questions"
// @Router      /quiz/questions [get]
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"questions":       h.bank.Public(),
		"pass_percentage": quiz.PassPercentage,
	})
}

// StartQuiz records the start of a quiz and unlocks First Steps.
// @Summary     Start quiz
// @Tags        quiz
// @Produce     json
// @Success     200 {object} map[string]interface{} "Started"
// @Router      /quiz/start [post]
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	unlocked, err := h.progress.StartQuiz()
	if failed(err) {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"first_steps_unlocked": unlocked,
		"questions":            h.bank.Len(),
	}, err)
}

// SubmitQuiz grades an attempt and grants its rewards.
// @Summary     Submit quiz
// @Tags        quiz
// @Accept      json
// @Produce     json
// @Param       request body SubmitQuizRequest true "Answers"
// @Success     200 {object} progression.QuizOutcome "Outcome"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /quiz/submit [post]
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	res, err := h.bank.Grade(req.Answers)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	elapsed := time.Duration(req.ElapsedSeconds * float64(time.Second))
	outcome, err := h.progress.CompleteQuiz(res, elapsed)
	if failed(err) {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"outcome": outcome}, err)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finlearn/internal/errors"
	"finlearn/internal/pagination"
	"finlearn/internal/services"
)

// ActivityHandler lists the activity journal.
type ActivityHandler struct {
	activity services.ActivityServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activity services.ActivityServicer) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// GetActivity lists journaled events, newest first.
// @Summary     Get activity
// @Tags        activity
// @Produce     json
// @Param       action    query string false "Filter by action, e.g. LEVEL_UP"
// @Param       from_date query string false "RFC 3339 lower bound"
// @Param       to_date   query string false "RFC 3339 upper bound"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.ActivityLog] "Paginated activity"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activity [get]
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter := services.ActivityFilter{Action: c.Query("action")}
	if v := c.Query("from_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date must be RFC 3339"))
			return
		}
		filter.FromDate = &t
	}
	if v := c.Query("to_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date must be RFC 3339"))
			return
		}
		filter.ToDate = &t
	}

	result, err := h.activity.List(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

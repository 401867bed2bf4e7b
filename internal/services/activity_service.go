package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "finlearn/internal/errors"
	"finlearn/internal/logger"
	"finlearn/internal/models"
	"finlearn/internal/pagination"
	"finlearn/internal/progression"
)

// activityService journals progression events to the activity_logs table.
type activityService struct {
	db *gorm.DB
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(db *gorm.DB) ActivityServicer {
	return &activityService{db: db}
}

// Record stores an engine event. Errors are logged but never propagate
// because the progress change has already been applied.
func (s *activityService) Record(evt progression.Event) {
	var details string
	if len(evt.Details) > 0 {
		data, err := json.Marshal(evt.Details)
		if err != nil {
			logger.Get().Errorw("failed to marshal activity details", "error", err, "action", evt.Action)
			details = "{}"
		} else {
			details = string(data)
		}
	}

	entry := &models.ActivityLog{
		Action:    evt.Action,
		SubjectID: evt.SubjectID,
		XP:        evt.XP,
		Level:     evt.Level,
		Details:   details,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create activity log entry",
			"error", err,
			"action", evt.Action,
			"subject_id", evt.SubjectID,
		)
	}
}

// List retrieves a page of activity, newest first.
func (s *activityService) List(page pagination.PageRequest, filter ActivityFilter) (*pagination.PageResponse[models.ActivityLog], error) {
	page.Defaults()

	base := s.db.Model(&models.ActivityLog{})
	if filter.Action != "" {
		base = base.Where("action = ?", filter.Action)
	}
	if filter.FromDate != nil {
		base = base.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("created_at <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.ActivityLog
	if err := base.Order("created_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

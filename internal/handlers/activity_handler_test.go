package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finlearn/internal/errors"
	"finlearn/internal/models"
	"finlearn/internal/pagination"
	"finlearn/internal/progression"
	"finlearn/internal/services"
)

// --- mock activity service ---

type mockActivityService struct {
	listFn func(page pagination.PageRequest, filter services.ActivityFilter) (*pagination.PageResponse[models.ActivityLog], error)
}

func (m *mockActivityService) Record(progression.Event) {}

func (m *mockActivityService) List(page pagination.PageRequest, filter services.ActivityFilter) (*pagination.PageResponse[models.ActivityLog], error) {
	if m.listFn != nil {
		return m.listFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.ActivityLog{}, 1, 20, 0)
	return &resp, nil
}

var _ services.ActivityServicer = (*mockActivityService)(nil)

func setupActivityRouter(handler *ActivityHandler) *gin.Engine {
	r := gin.New()
	r.GET("/activity", handler.GetActivity)
	return r
}

func TestActivityHandler_GetActivity(t *testing.T) {
	t.Run("passes filters", func(t *testing.T) {
		var gotPage pagination.PageRequest
		var gotFilter services.ActivityFilter
		svc := &mockActivityService{
			listFn: func(page pagination.PageRequest, filter services.ActivityFilter) (*pagination.PageResponse[models.ActivityLog], error) {
				gotPage, gotFilter = page, filter
				resp := pagination.NewPageResponse([]models.ActivityLog{{Action: models.ActionLevelUp}}, 2, 5, 6)
				return &resp, nil
			},
		}
		r := setupActivityRouter(NewActivityHandler(svc))

		rec := doRequest(r, "GET", "/activity?page=2&page_size=5&action=LEVEL_UP&from_date=2024-03-01T00:00:00Z", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 || gotFilter.Action != models.ActionLevelUp || gotFilter.FromDate == nil {
			t.Errorf("unexpected call: page=%+v filter=%+v", gotPage, gotFilter)
		}
		result := parseJSON(t, rec)
		if result["total_pages"].(float64) != 2 {
			t.Errorf("expected 2 pages, got %v", result["total_pages"])
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		r := setupActivityRouter(NewActivityHandler(&mockActivityService{}))

		rec := doRequest(r, "GET", "/activity?to_date=yesterday", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on oversized page", func(t *testing.T) {
		r := setupActivityRouter(NewActivityHandler(&mockActivityService{}))

		rec := doRequest(r, "GET", "/activity?page_size=1000", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 500 on service error", func(t *testing.T) {
		svc := &mockActivityService{
			listFn: func(pagination.PageRequest, services.ActivityFilter) (*pagination.PageResponse[models.ActivityLog], error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		r := setupActivityRouter(NewActivityHandler(svc))

		rec := doRequest(r, "GET", "/activity", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

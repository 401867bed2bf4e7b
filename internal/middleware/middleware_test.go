package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "finlearn/internal/errors"
	"finlearn/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = RequestID(c)
		c.Status(http.StatusOK)
	})

	t.Run("assigns an id", func(t *testing.T) {
		rec := serve(r, "GET", "/ping", nil)
		id := rec.Header().Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("expected UUID request id, got %q", id)
		}
		if seen != id {
			t.Errorf("handler saw %q, header has %q", seen, id)
		}
	})

	t.Run("reuses a valid incoming id", func(t *testing.T) {
		id := uuid.New().String()
		rec := serve(r, "GET", "/ping", http.Header{"X-Request-Id": {id}})
		if got := rec.Header().Get("X-Request-ID"); got != id {
			t.Errorf("expected %q, got %q", id, got)
		}
	})

	t.Run("replaces a malformed incoming id", func(t *testing.T) {
		rec := serve(r, "GET", "/ping", http.Header{"X-Request-Id": {"<script>"}})
		if got := rec.Header().Get("X-Request-ID"); got == "<script>" {
			t.Error("malformed id should be replaced")
		}
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperrors.ErrGoalNotFound) })
	r.GET("/raw", func(c *gin.Context) { _ = c.Error(errors.New("secret detail")) })

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/app", http.StatusNotFound, "GOAL_NOT_FOUND"},
		{"/raw", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(r, "GET", tt.path, nil)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad JSON: %v", err)
			}
			if body.Error.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, body.Error.Code)
			}
			if body.Error.Message == "secret detail" {
				t.Error("internal error details leaked")
			}
		})
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:5173"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(r, "OPTIONS", "/x", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("unexpected origin header %q", got)
	}

	if rec := serve(r, "GET", "/x", nil); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

package handlers

import (
	"errors"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	apperrors "finlearn/internal/errors"
	"finlearn/internal/logger"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// respond writes body with status. A STATE_NOT_PERSISTED error still returns
// the body, with a warning attached, since the change was applied in memory.
// Any other error is written with respondWithError.
func respond(c *gin.Context, status int, body gin.H, err error) {
	if err != nil {
		if !errors.Is(err, apperrors.ErrStateNotPersisted) {
			respondWithError(c, err)
			return
		}
		logger.Get().Warnw("progress not persisted",
			"error", err.Error(),
			"path", c.Request.URL.Path,
		)
		body["warning"] = ErrorDetail{
			Code:    apperrors.ErrStateNotPersisted.Code,
			Message: apperrors.ErrStateNotPersisted.Message,
		}
	}
	c.JSON(status, body)
}

// failed reports whether err should abort the request. A change that was
// applied but not saved is not a failure.
func failed(err error) bool {
	return err != nil && !errors.Is(err, apperrors.ErrStateNotPersisted)
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{
			Code:    appErr.Code,
			Message: appErr.Message,
		}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}

// invalidInput wraps a binding error as INVALID_INPUT.
func invalidInput(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// parseDate parses an optional YYYY-MM-DD value. Empty input returns nil.
func parseDate(field, value string) (*civil.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(value)
	if err != nil || !d.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

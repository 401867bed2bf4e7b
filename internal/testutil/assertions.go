package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "finlearn/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertNotPersisted checks that err reports a change that was applied in
// memory but not saved.
func AssertNotPersisted(t *testing.T, err error) {
	t.Helper()

	if !errors.Is(err, apperrors.ErrStateNotPersisted) {
		t.Fatalf("expected STATE_NOT_PERSISTED, got %v", err)
	}
}

// AssertDecimal compares got with the decimal literal want, ignoring scale.
func AssertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %s", name, want, got)
	}
}

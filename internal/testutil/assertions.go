package testutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "gastos/internal/errors"
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

// AssertInvalidInput checks that err is an INVALID_INPUT AppError whose
// message carries the validation reason fragment.
func AssertInvalidInput(t *testing.T, err error, reason string) {
	t.Helper()

	AssertAppError(t, err, "INVALID_INPUT")
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && !strings.Contains(appErr.Message, reason) {
		t.Errorf("expected reason containing %q, got %q", reason, appErr.Message)
	}
}

// AssertAmount compares a stored amount against its decimal text.
func AssertAmount(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected amount %s, got %s", want, got.String())
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

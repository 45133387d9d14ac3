// Package validation normalizes raw request input and rejects malformed values.
// Every function is pure: it returns the normalized value or an *Error that
// describes the violated constraint.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	UsernameMinLength    = 3
	UsernameMaxLength    = 20
	PasswordMinLength    = 4
	PasswordMaxLength    = 128
	DescriptionMaxLength = 500
)

// MaxAmount is the largest accepted amount magnitude.
var MaxAmount = decimal.NewFromInt(1_000_000)

const (
	// amountMaxLength bounds the raw text handed to the decimal parser.
	amountMaxLength = 64
	// Anything with more integer digits than MaxAmount is over the limit.
	maxAmountMagnitude = 7
	// Anything below 10^-3 rounds to zero at two places.
	minAmountMagnitude = -2
)

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9_-]+$`)
	controlRegex  = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// Error is a client-caused input failure. Reason is safe to return to callers.
type Error struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Reason }

func newError(field, format string, args ...any) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// SanitizeString trims surrounding whitespace, enforces 1..maxLength runes and
// then strips ASCII control characters. The length check runs before the
// control characters are removed, so padding with control characters still
// counts against maxLength. Applying it to its own output is a no-op.
func SanitizeString(value string, maxLength int) (string, error) {
	return sanitize("value", value, maxLength)
}

func sanitize(field, value string, maxLength int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", newError(field, "%s cannot be empty", field)
	}
	if utf8.RuneCountInString(value) > maxLength {
		return "", newError(field, "%s is too long (max %d characters)", field, maxLength)
	}

	// Stripping can expose whitespace at the edges or leave nothing behind.
	value = strings.TrimSpace(controlRegex.ReplaceAllString(value, ""))
	if value == "" {
		return "", newError(field, "%s cannot be empty", field)
	}
	return value, nil
}

// Username returns the lower-cased username or an error when it is shorter
// than 3 characters or uses anything outside [a-z0-9_-].
func Username(raw string) (string, error) {
	username, err := sanitize("username", raw, UsernameMaxLength)
	if err != nil {
		return "", err
	}
	username = strings.ToLower(username)

	if utf8.RuneCountInString(username) < UsernameMinLength {
		return "", newError("username", "username must be at least %d characters", UsernameMinLength)
	}
	if !usernameRegex.MatchString(username) {
		return "", newError("username", "username may only contain letters, numbers, hyphens and underscores")
	}
	return username, nil
}

// Password checks the length bounds only. Passwords are never trimmed.
func Password(raw string) (string, error) {
	n := utf8.RuneCountInString(raw)
	if n < PasswordMinLength || n > PasswordMaxLength {
		return "", newError("password", "password must be %d-%d characters", PasswordMinLength, PasswordMaxLength)
	}
	return raw, nil
}

// Amount parses a decimal amount, rejects zero and magnitudes above MaxAmount,
// and rounds half away from zero to two places ("12.345" -> 12.35).
//
// Range checks on the digit count and exponent run before any comparison or
// rounding, since both rescale by 10^|exponent|.
func Amount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > amountMaxLength {
		return decimal.Zero, newError("amount", "amount must be a valid number")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, newError("amount", "amount must be a valid number")
	}
	if amount.IsZero() {
		return decimal.Zero, newError("amount", "amount cannot be zero")
	}

	// |amount| < 10^magnitude, and |amount| >= 10^(magnitude-1).
	magnitude := int64(amount.NumDigits()) + int64(amount.Exponent())
	if magnitude > maxAmountMagnitude {
		return decimal.Zero, newError("amount", "amount exceeds the allowed limit of %s", MaxAmount.String())
	}
	if magnitude < minAmountMagnitude {
		return decimal.Zero, newError("amount", "amount cannot be zero")
	}

	if amount.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, newError("amount", "amount exceeds the allowed limit of %s", MaxAmount.String())
	}

	rounded := amount.Round(2)
	if rounded.IsZero() {
		return decimal.Zero, newError("amount", "amount cannot be zero")
	}
	return rounded, nil
}

// Description sanitizes a transaction description.
func Description(raw string) (string, error) {
	return sanitize("description", raw, DescriptionMaxLength)
}

// UserID parses a positive integer user id.
func UserID(raw string) (uint, error) {
	return positiveID("user_id", raw)
}

// TransactionID parses a positive integer transaction id.
func TransactionID(raw string) (uint, error) {
	return positiveID("transaction_id", raw)
}

func positiveID(field, raw string) (uint, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, newError(field, "%s must be an integer", field)
	}
	if id <= 0 {
		return 0, newError(field, "%s must be a positive integer", field)
	}
	return uint(id), nil
}

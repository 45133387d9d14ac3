// Package requestid issues and validates request correlation IDs.
package requestid

import (
	"github.com/google/uuid"
)

// Header is the HTTP header carrying the request ID.
const Header = "X-Request-ID"

// New generates a time-ordered UUIDv7, falling back to a random UUIDv4 if the
// clock-based generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// FromHeader returns the canonical form of an incoming request ID when it is
// a valid UUID, or a freshly generated one otherwise. Arbitrary client text is
// never echoed back or logged.
func FromHeader(value string) string {
	if value == "" {
		return New()
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return New()
	}
	return parsed.String()
}

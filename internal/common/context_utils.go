package common

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"staffhub/internal/models"
)

type contextKey string

// UserIDKey carries the authenticated caller's id when the auth
// middleware is enabled.
const UserIDKey contextKey = "user_id"

// GetUserIDFromContext extracts the caller ID from the request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
var phonePattern = regexp.MustCompile(`^\d{10}$`)

const (
	FullNameMinLen = 4
	FullNameMaxLen = 160
	EmailMaxLen    = 100
)

// ValidateFullName checks the 4..160 character bound. Bounds count
// characters, not bytes, so multibyte names measure correctly.
func ValidateFullName(name string) error {
	if n := utf8.RuneCountInString(name); n < FullNameMinLen || n > FullNameMaxLen {
		return fmt.Errorf("Full name must be between %d and %d characters", FullNameMinLen, FullNameMaxLen)
	}
	return nil
}

// ValidateEmail checks syntax and the 100 character cap. Uniqueness is
// an entity-level rule enforced by the service and the store.
func ValidateEmail(email string) error {
	if utf8.RuneCountInString(email) > EmailMaxLen {
		return fmt.Errorf("Email must be at most %d characters", EmailMaxLen)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("Email must be valid")
	}
	return nil
}

// ValidatePhoneNumber requires exactly 10 decimal digits.
func ValidatePhoneNumber(phone string) error {
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("Phone number must be 10 digits")
	}
	return nil
}

// ParsePastDate parses a YYYY-MM-DD value that must be strictly before
// the current date.
func ParsePastDate(value string) (time.Time, error) {
	date, err := time.Parse(models.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("Date of birth must be in YYYY-MM-DD format")
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !date.Before(today) {
		return time.Time{}, fmt.Errorf("Date of birth must be in the past")
	}
	return date, nil
}

// ValidatePaginationParams checks the zero-based page index and the
// positive page size.
func ValidatePaginationParams(page, size int) error {
	if page < 0 {
		return fmt.Errorf("page index must not be negative")
	}
	if size <= 0 {
		return fmt.Errorf("page size must be positive")
	}
	return nil
}

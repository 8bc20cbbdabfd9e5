package common

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"staffhub/internal/models"
)

func TestGetUserIDFromContext(t *testing.T) {
	userID := uuid.New()
	ctx := context.WithValue(context.Background(), UserIDKey, userID)

	got, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	_, ok = GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestValidateFullName(t *testing.T) {
	assert.Error(t, ValidateFullName("Jo"))
	assert.Error(t, ValidateFullName(strings.Repeat("a", 161)))
	assert.NoError(t, ValidateFullName("John"))
	assert.NoError(t, ValidateFullName(strings.Repeat("a", 160)))
}

func TestValidateFullNameCountsCharacters(t *testing.T) {
	// "Đỗ" is 2 characters in 5 bytes, still under the minimum.
	assert.Error(t, ValidateFullName("Đỗ"))
	assert.NoError(t, ValidateFullName("Đỗ Văn Anh"))
	// 160 accented characters is 480 bytes but exactly at the cap.
	assert.NoError(t, ValidateFullName(strings.Repeat("ỗ", 160)))
	assert.Error(t, ValidateFullName(strings.Repeat("ỗ", 161)))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("john@x.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("spaces in@x.com"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 95)+"@x.com"))
	assert.NoError(t, ValidateEmail(strings.Repeat("ă", 94)+"@x.com"))
	assert.Error(t, ValidateEmail(strings.Repeat("ă", 95)+"@x.com"))
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.NoError(t, ValidatePhoneNumber("1234567890"))
	assert.Error(t, ValidatePhoneNumber("123456789"))
	assert.Error(t, ValidatePhoneNumber("12345678901"))
	assert.Error(t, ValidatePhoneNumber("12345abcde"))
}

func TestParsePastDate(t *testing.T) {
	date, err := ParsePastDate("1990-01-01")
	assert.NoError(t, err)
	assert.Equal(t, 1990, date.Year())

	_, err = ParsePastDate("01/01/1990")
	assert.Error(t, err)

	today := time.Now().Format(models.DateLayout)
	_, err = ParsePastDate(today)
	assert.Error(t, err)

	future := time.Now().AddDate(1, 0, 0).Format(models.DateLayout)
	_, err = ParsePastDate(future)
	assert.Error(t, err)
}

func TestValidatePaginationParams(t *testing.T) {
	assert.NoError(t, ValidatePaginationParams(0, 10))
	assert.NoError(t, ValidatePaginationParams(5, 500))
	assert.Error(t, ValidatePaginationParams(-1, 10))
	assert.Error(t, ValidatePaginationParams(0, 0))
	assert.Error(t, ValidatePaginationParams(0, -5))
}

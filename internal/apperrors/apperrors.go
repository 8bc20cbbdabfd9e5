package apperrors

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// AppError is a domain-level failure with a fixed HTTP mapping. Every
// failure the service layer can raise is one of the constructors below.
type AppError struct {
	Status  int
	Message string
	Errors  []string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidation(violations []string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Errors:  violations,
	}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

func NewForbidden(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

func NewDuplicate(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message}
}

func NewInternal(message string) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: message}
}

func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

func IsDuplicate(err error) bool {
	return statusOf(err) == http.StatusConflict
}

func statusOf(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// ErrorResponse is the uniform error envelope returned to clients.
type ErrorResponse struct {
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Errors    []string  `json:"errors,omitempty"`
}

func NewErrorResponse(status int, message string, errs []string) *ErrorResponse {
	return &ErrorResponse{
		Message:   message,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Errors:    errs,
	}
}

// HTTPErrorHandler is the single dispatch point: every failure raised
// anywhere in the request path ends up here exactly once and is
// converted to exactly one envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var resp *ErrorResponse

	var ae *AppError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ae):
		resp = NewErrorResponse(ae.Status, ae.Message, ae.Errors)
	case errors.As(err, &he):
		resp = NewErrorResponse(he.Code, fmt.Sprintf("%v", he.Message), nil)
	default:
		resp = NewErrorResponse(http.StatusInternalServerError, err.Error(), nil)
	}

	if jsonErr := c.JSON(resp.Status, resp); jsonErr != nil {
		log.Printf("Failed to write error response: %v", jsonErr)
	}
}

package models

import (
	"strings"
	"time"
)

// DateLayout is the wire format for dateOfBirth values.
const DateLayout = "2006-01-02"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// ParseGender normalizes and validates a gender value against the closed set.
func ParseGender(s string) (Gender, bool) {
	switch Gender(strings.ToUpper(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	case GenderOther:
		return GenderOther, true
	}
	return "", false
}

type Employee struct {
	ID             int64     `json:"id" db:"id"`
	FullName       string    `json:"full_name" db:"full_name"`
	Email          string    `json:"email" db:"email"`
	DateOfBirth    time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender         Gender    `json:"gender" db:"gender"`
	PhoneNumber    string    `json:"phone_number" db:"phone_number"`
	Active         bool      `json:"active" db:"active"`
	HashedPassword string    `json:"-" db:"hashed_password"` // Never serialize in JSON
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// EmployeeResponse is the outbound shape. The password hash has no field
// here at all, so no serialization path can expose it.
type EmployeeResponse struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	DateOfBirth string    `json:"dateOfBirth"`
	Gender      Gender    `json:"gender"`
	PhoneNumber string    `json:"phoneNumber"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewEmployeeResponse(e *Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:          e.ID,
		FullName:    e.FullName,
		Email:       e.Email,
		DateOfBirth: e.DateOfBirth.Format(DateLayout),
		Gender:      e.Gender,
		PhoneNumber: e.PhoneNumber,
		Active:      e.Active,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EmployeePage is a single page of employees plus total-count metadata.
// Page indexes are zero-based.
type EmployeePage struct {
	Employees  []*Employee
	Page       int
	Size       int
	TotalCount int64
}

// CreateEmployeeRequest is the employee creation payload.
type CreateEmployeeRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phoneNumber"`
	Active      *bool  `json:"active"`
	Password    string `json:"password"`
}

// UpdateEmployeeRequest is the partial-update payload. Nil fields are
// left untouched on the entity; email is immutable after creation.
type UpdateEmployeeRequest struct {
	FullName    *string `json:"fullName"`
	DateOfBirth *string `json:"dateOfBirth"`
	Gender      *string `json:"gender"`
	PhoneNumber *string `json:"phoneNumber"`
	Active      *bool   `json:"active"`
	Password    *string `json:"password"`
}

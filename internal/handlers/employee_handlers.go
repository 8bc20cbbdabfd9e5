package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"staffhub/internal/apperrors"
	"staffhub/internal/common"
	"staffhub/internal/models"
	"staffhub/internal/services"
)

// EmployeeHandlers handles employee-related HTTP requests. Handlers
// return errors instead of writing responses for failures; the central
// error handler owns the envelope.
type EmployeeHandlers struct {
	employeeService services.EmployeeService
}

func NewEmployeeHandlers(employeeService services.EmployeeService) *EmployeeHandlers {
	return &EmployeeHandlers{employeeService: employeeService}
}

// validateCreateEmployeeRequest returns the ordered list of format-level
// violations as "field: message" strings.
func validateCreateEmployeeRequest(req *models.CreateEmployeeRequest) []string {
	var violations []string

	if strings.TrimSpace(req.FullName) == "" {
		violations = append(violations, "fullName: Full name is required")
	} else if err := common.ValidateFullName(req.FullName); err != nil {
		violations = append(violations, "fullName: "+err.Error())
	}

	if strings.TrimSpace(req.Email) == "" {
		violations = append(violations, "email: Email is required")
	} else if err := common.ValidateEmail(req.Email); err != nil {
		violations = append(violations, "email: "+err.Error())
	}

	if strings.TrimSpace(req.DateOfBirth) == "" {
		violations = append(violations, "dateOfBirth: Date of birth is required")
	} else if _, err := common.ParsePastDate(req.DateOfBirth); err != nil {
		violations = append(violations, "dateOfBirth: "+err.Error())
	}

	if strings.TrimSpace(req.Gender) == "" {
		violations = append(violations, "gender: Gender is required")
	} else if _, ok := models.ParseGender(req.Gender); !ok {
		violations = append(violations, "gender: must be one of MALE, FEMALE, OTHER")
	}

	if strings.TrimSpace(req.PhoneNumber) == "" {
		violations = append(violations, "phoneNumber: Phone number is required")
	} else if err := common.ValidatePhoneNumber(req.PhoneNumber); err != nil {
		violations = append(violations, "phoneNumber: "+err.Error())
	}

	if req.Password == "" {
		violations = append(violations, "password: Password is required")
	}

	return violations
}

func validateUpdateEmployeeRequest(req *models.UpdateEmployeeRequest) []string {
	var violations []string

	if req.FullName != nil {
		if err := common.ValidateFullName(*req.FullName); err != nil {
			violations = append(violations, "fullName: "+err.Error())
		}
	}
	if req.DateOfBirth != nil {
		if _, err := common.ParsePastDate(*req.DateOfBirth); err != nil {
			violations = append(violations, "dateOfBirth: "+err.Error())
		}
	}
	if req.Gender != nil {
		if _, ok := models.ParseGender(*req.Gender); !ok {
			violations = append(violations, "gender: must be one of MALE, FEMALE, OTHER")
		}
	}
	if req.PhoneNumber != nil {
		if err := common.ValidatePhoneNumber(*req.PhoneNumber); err != nil {
			violations = append(violations, "phoneNumber: "+err.Error())
		}
	}
	if req.Password != nil && *req.Password == "" {
		violations = append(violations, "password: Password must not be empty")
	}

	return violations
}

func parseEmployeeID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidation([]string{"id: Employee ID must be a positive integer"})
	}
	return id, nil
}

// CreateEmployee handles POST /v1/employees.
func (h *EmployeeHandlers) CreateEmployee(c echo.Context) error {
	var req models.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidation([]string{"body: Invalid request format"})
	}

	if violations := validateCreateEmployeeRequest(&req); len(violations) > 0 {
		return apperrors.NewValidation(violations)
	}

	employee, err := h.employeeService.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, models.NewEmployeeResponse(employee))
}

// ListEmployees handles GET /v1/employees. Without query parameters it
// returns the full set; with page and size it returns a single page
// plus total-count metadata.
func (h *EmployeeHandlers) ListEmployees(c echo.Context) error {
	pageStr := c.QueryParam("page")
	sizeStr := c.QueryParam("size")

	if pageStr == "" && sizeStr == "" {
		employees, err := h.employeeService.List(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toResponses(employees))
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return apperrors.NewValidation([]string{"page: page index must be an integer"})
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return apperrors.NewValidation([]string{"size: page size must be an integer"})
	}

	result, err := h.employeeService.ListPage(c.Request().Context(), page, size)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"employees":  toResponses(result.Employees),
		"page":       result.Page,
		"size":       result.Size,
		"totalCount": result.TotalCount,
	})
}

// GetEmployee handles GET /v1/employees/:id.
func (h *EmployeeHandlers) GetEmployee(c echo.Context) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	employee, err := h.employeeService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.NewEmployeeResponse(employee))
}

// UpdateEmployee handles PUT /v1/employees/:id with partial-update
// semantics: absent fields keep their stored values.
func (h *EmployeeHandlers) UpdateEmployee(c echo.Context) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	var req models.UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidation([]string{"body: Invalid request format"})
	}

	if violations := validateUpdateEmployeeRequest(&req); len(violations) > 0 {
		return apperrors.NewValidation(violations)
	}

	employee, err := h.employeeService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.NewEmployeeResponse(employee))
}

// DeleteEmployee handles DELETE /v1/employees/:id.
func (h *EmployeeHandlers) DeleteEmployee(c echo.Context) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	if err := h.employeeService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func toResponses(employees []*models.Employee) []*models.EmployeeResponse {
	responses := make([]*models.EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		responses = append(responses, models.NewEmployeeResponse(employee))
	}
	return responses
}

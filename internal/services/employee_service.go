package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"staffhub/internal/apperrors"
	"staffhub/internal/caching"
	"staffhub/internal/common"
	"staffhub/internal/models"
	"staffhub/internal/repositories"
)

type EmployeeService interface {
	Create(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error)
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	Update(ctx context.Context, id int64, req *models.UpdateEmployeeRequest) (*models.Employee, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Employee, error)
	ListPage(ctx context.Context, page, size int) (*models.EmployeePage, error)
	Count(ctx context.Context) (int64, error)
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
	cacheSvc     caching.CacheService
	bcryptCost   int
	cacheTTL     time.Duration
}

func NewEmployeeService(employeeRepo repositories.EmployeeRepository, cacheSvc caching.CacheService, bcryptCost int, cacheTTL time.Duration) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		cacheSvc:     cacheSvc,
		bcryptCost:   bcryptCost,
		cacheTTL:     cacheTTL,
	}
}

// Create persists a new employee. The email existence check is an early
// fail; the store's unique constraint remains the final authority, so a
// race past the check still surfaces as a duplicate error.
func (s *employeeService) Create(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error) {
	exists, err := s.employeeRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicate(fmt.Sprintf("Email %s already exists", req.Email))
	}

	dateOfBirth, err := time.Parse(models.DateLayout, req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewValidation([]string{"dateOfBirth: " + err.Error()})
	}

	gender, ok := models.ParseGender(req.Gender)
	if !ok {
		return nil, apperrors.NewValidation([]string{"gender: must be one of MALE, FEMALE, OTHER"})
	}

	// Hashing is the expensive step, so it runs only once the input is
	// known to be well formed.
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	employee := &models.Employee{
		FullName:       req.FullName,
		Email:          req.Email,
		DateOfBirth:    dateOfBirth,
		Gender:         gender,
		PhoneNumber:    req.PhoneNumber,
		Active:         active,
		HashedPassword: string(hash),
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicate(fmt.Sprintf("Email %s already exists", req.Email))
		}
		return nil, err
	}

	return employee, nil
}

// GetByID serves reads through the cache. The cached copy never carries
// the password hash, so it is only ever used on this read path.
func (s *employeeService) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	if cached, err := s.cacheSvc.GetEmployee(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.NewNotFound(notFoundMessage(id))
		}
		return nil, err
	}

	if err := s.cacheSvc.SetEmployee(ctx, employee, s.cacheTTL); err != nil {
		log.Printf("Failed to cache employee %d: %v", id, err)
	}

	return employee, nil
}

// Update merges only the fields present in the request onto the stored
// entity, re-hashing the password when a new one is supplied. It always
// reads the repo, never the cache, so the stored hash is preserved.
func (s *employeeService) Update(ctx context.Context, id int64, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.NewNotFound(notFoundMessage(id))
		}
		return nil, err
	}

	if req.FullName != nil {
		employee.FullName = *req.FullName
	}
	if req.DateOfBirth != nil {
		dateOfBirth, err := time.Parse(models.DateLayout, *req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidation([]string{"dateOfBirth: " + err.Error()})
		}
		employee.DateOfBirth = dateOfBirth
	}
	if req.Gender != nil {
		gender, ok := models.ParseGender(*req.Gender)
		if !ok {
			return nil, apperrors.NewValidation([]string{"gender: must be one of MALE, FEMALE, OTHER"})
		}
		employee.Gender = gender
	}
	if req.PhoneNumber != nil {
		employee.PhoneNumber = *req.PhoneNumber
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		employee.HashedPassword = string(hash)
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.NewNotFound(notFoundMessage(id))
		}
		return nil, err
	}

	if err := s.cacheSvc.DeleteEmployee(ctx, id); err != nil {
		log.Printf("Failed to invalidate employee %d cache: %v", id, err)
	}

	return employee, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return apperrors.NewNotFound(notFoundMessage(id))
		}
		return err
	}

	if err := s.cacheSvc.DeleteEmployee(ctx, id); err != nil {
		log.Printf("Failed to invalidate employee %d cache: %v", id, err)
	}

	return nil
}

func (s *employeeService) List(ctx context.Context) ([]*models.Employee, error) {
	return s.employeeRepo.List(ctx)
}

func (s *employeeService) ListPage(ctx context.Context, page, size int) (*models.EmployeePage, error) {
	if err := common.ValidatePaginationParams(page, size); err != nil {
		return nil, apperrors.NewValidation([]string{"pagination: " + err.Error()})
	}

	employees, err := s.employeeRepo.ListPage(ctx, size, page*size)
	if err != nil {
		return nil, err
	}

	total, err := s.employeeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &models.EmployeePage{
		Employees:  employees,
		Page:       page,
		Size:       size,
		TotalCount: total,
	}, nil
}

func (s *employeeService) Count(ctx context.Context) (int64, error) {
	return s.employeeRepo.Count(ctx)
}

func notFoundMessage(id int64) string {
	return fmt.Sprintf("Employee with ID %d not found", id)
}

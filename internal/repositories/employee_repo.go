package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"staffhub/internal/models"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDuplicateEmail   = errors.New("email already exists")
)

// Database is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it too.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Employee, error)
	ListPage(ctx context.Context, limit, offset int) ([]*models.Employee, error)
	Count(ctx context.Context) (int64, error)
}

type employeeRepo struct {
	db Database
}

func NewEmployeeRepository(db Database) EmployeeRepository {
	return &employeeRepo{db: db}
}

const employeeColumns = `id, full_name, email, date_of_birth, gender, phone_number, active, hashed_password, created_at, updated_at`

// isUniqueViolation reports a Postgres unique-constraint failure. The
// constraint is the final authority on email uniqueness; the service's
// existence check is only an early fail.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *employeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	query := `
		INSERT INTO employees (full_name, email, date_of_birth, gender, phone_number, active, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		employee.FullName, employee.Email, employee.DateOfBirth, employee.Gender,
		employee.PhoneNumber, employee.Active, employee.HashedPassword,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *employeeRepo) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&employee.ID, &employee.FullName, &employee.Email, &employee.DateOfBirth,
		&employee.Gender, &employee.PhoneNumber, &employee.Active,
		&employee.HashedPassword, &employee.CreatedAt, &employee.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (r *employeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *employeeRepo) Update(ctx context.Context, employee *models.Employee) error {
	query := `
		UPDATE employees
		SET full_name = $1, date_of_birth = $2, gender = $3, phone_number = $4, active = $5, hashed_password = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		employee.FullName, employee.DateOfBirth, employee.Gender,
		employee.PhoneNumber, employee.Active, employee.HashedPassword, employee.ID,
	).Scan(&employee.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrEmployeeNotFound
	}
	return err
}

func (r *employeeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepo) List(ctx context.Context) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (r *employeeRepo) ListPage(ctx context.Context, limit, offset int) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (r *employeeRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanEmployees(rows pgx.Rows) ([]*models.Employee, error) {
	var employees []*models.Employee
	for rows.Next() {
		employee := &models.Employee{}
		if err := rows.Scan(
			&employee.ID, &employee.FullName, &employee.Email, &employee.DateOfBirth,
			&employee.Gender, &employee.PhoneNumber, &employee.Active,
			&employee.HashedPassword, &employee.CreatedAt, &employee.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

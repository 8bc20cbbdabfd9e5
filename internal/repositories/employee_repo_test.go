package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"staffhub/internal/models"
)

type EmployeeRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo EmployeeRepository
	ctx  context.Context
}

func (suite *EmployeeRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewEmployeeRepository(mock)
	suite.ctx = context.Background()
}

func (suite *EmployeeRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestEmployeeRepoTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeRepoTestSuite))
}

func sampleEmployee() *models.Employee {
	return &models.Employee{
		FullName:       "John Smith",
		Email:          "john@x.com",
		DateOfBirth:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:         models.GenderMale,
		PhoneNumber:    "1234567890",
		Active:         true,
		HashedPassword: "$2a$10$hash",
	}
}

func employeeRows(e *models.Employee) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "full_name", "email", "date_of_birth", "gender", "phone_number",
		"active", "hashed_password", "created_at", "updated_at",
	}).AddRow(
		e.ID, e.FullName, e.Email, e.DateOfBirth, e.Gender, e.PhoneNumber,
		e.Active, e.HashedPassword, e.CreatedAt, e.UpdatedAt,
	)
}

func (suite *EmployeeRepoTestSuite) TestCreate_Success() {
	employee := sampleEmployee()
	now := time.Now()

	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO employees (full_name, email, date_of_birth, gender, phone_number, active, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`)).WithArgs(
		employee.FullName, employee.Email, employee.DateOfBirth, employee.Gender,
		employee.PhoneNumber, employee.Active, employee.HashedPassword,
	).WillReturnRows(
		pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now),
	)

	err := suite.repo.Create(suite.ctx, employee)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), employee.ID)
	assert.Equal(suite.T(), now, employee.CreatedAt)
	assert.Equal(suite.T(), now, employee.UpdatedAt)
}

func (suite *EmployeeRepoTestSuite) TestCreate_UniqueViolation() {
	employee := sampleEmployee()

	suite.mock.ExpectQuery(`INSERT INTO employees`).WithArgs(
		employee.FullName, employee.Email, employee.DateOfBirth, employee.Gender,
		employee.PhoneNumber, employee.Active, employee.HashedPassword,
	).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"})

	err := suite.repo.Create(suite.ctx, employee)

	assert.ErrorIs(suite.T(), err, ErrDuplicateEmail)
}

func (suite *EmployeeRepoTestSuite) TestGetByID_Success() {
	stored := sampleEmployee()
	stored.ID = 7
	stored.CreatedAt = time.Now().Add(-time.Hour)
	stored.UpdatedAt = stored.CreatedAt

	suite.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`,
	)).WithArgs(int64(7)).WillReturnRows(employeeRows(stored))

	employee, err := suite.repo.GetByID(suite.ctx, 7)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored.Email, employee.Email)
	assert.Equal(suite.T(), stored.HashedPassword, employee.HashedPassword)
}

func (suite *EmployeeRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`,
	)).WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)

	employee, err := suite.repo.GetByID(suite.ctx, 99)

	assert.Nil(suite.T(), employee)
	assert.ErrorIs(suite.T(), err, ErrEmployeeNotFound)
}

func (suite *EmployeeRepoTestSuite) TestExistsByEmail() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`,
	)).WithArgs("john@x.com").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := suite.repo.ExistsByEmail(suite.ctx, "john@x.com")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}

func (suite *EmployeeRepoTestSuite) TestUpdate_Success() {
	employee := sampleEmployee()
	employee.ID = 7
	updated := time.Now()

	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE employees
		SET full_name = $1, date_of_birth = $2, gender = $3, phone_number = $4, active = $5, hashed_password = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`)).WithArgs(
		employee.FullName, employee.DateOfBirth, employee.Gender,
		employee.PhoneNumber, employee.Active, employee.HashedPassword, employee.ID,
	).WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(updated))

	err := suite.repo.Update(suite.ctx, employee)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), updated, employee.UpdatedAt)
}

func (suite *EmployeeRepoTestSuite) TestUpdate_NotFound() {
	employee := sampleEmployee()
	employee.ID = 99

	suite.mock.ExpectQuery(`UPDATE employees`).WithArgs(
		employee.FullName, employee.DateOfBirth, employee.Gender,
		employee.PhoneNumber, employee.Active, employee.HashedPassword, employee.ID,
	).WillReturnError(pgx.ErrNoRows)

	err := suite.repo.Update(suite.ctx, employee)

	assert.ErrorIs(suite.T(), err, ErrEmployeeNotFound)
}

func (suite *EmployeeRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM employees WHERE id = $1`,
	)).WithArgs(int64(7)).WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.ctx, 7)

	assert.NoError(suite.T(), err)
}

func (suite *EmployeeRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM employees WHERE id = $1`,
	)).WithArgs(int64(99)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.ctx, 99)

	assert.ErrorIs(suite.T(), err, ErrEmployeeNotFound)
}

func (suite *EmployeeRepoTestSuite) TestListPage() {
	first := sampleEmployee()
	first.ID = 3
	second := sampleEmployee()
	second.ID = 4
	second.Email = "jane@x.com"
	rows := employeeRows(first).AddRow(
		second.ID, second.FullName, second.Email, second.DateOfBirth, second.Gender,
		second.PhoneNumber, second.Active, second.HashedPassword, second.CreatedAt, second.UpdatedAt,
	)

	suite.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+employeeColumns+` FROM employees ORDER BY id LIMIT $1 OFFSET $2`,
	)).WithArgs(2, 2).WillReturnRows(rows)

	employees, err := suite.repo.ListPage(suite.ctx, 2, 2)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), employees, 2)
	assert.Equal(suite.T(), int64(3), employees[0].ID)
	assert.Equal(suite.T(), "jane@x.com", employees[1].Email)
}

func (suite *EmployeeRepoTestSuite) TestCount() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COUNT(*) FROM employees`,
	)).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	count, err := suite.repo.Count(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(42), count)
}

func (suite *EmployeeRepoTestSuite) TestIsUniqueViolation_OtherPgError() {
	err := &pgconn.PgError{Code: "23503"}
	assert.False(suite.T(), isUniqueViolation(err))
	assert.False(suite.T(), isUniqueViolation(errors.New("plain error")))
}

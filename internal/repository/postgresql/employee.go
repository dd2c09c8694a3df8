package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, user_id, employee_number, full_name, national_id, email,
	phone_number, department, job_title, hire_date, employment_type, employment_status,
	bank_name, bank_account, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.UserID, &e.EmployeeNumber, &e.FullName, &e.NationalID, &e.Email,
		&e.PhoneNumber, &e.Department, &e.JobTitle, &e.HireDate, &e.EmploymentType, &e.EmploymentStatus,
		&e.BankName, &e.BankAccount, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			company_id, user_id, employee_number, full_name, national_id, email,
			phone_number, department, job_title, hire_date, employment_type, employment_status,
			bank_name, bank_account
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14
		)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.CompanyID, newEmployee.UserID, newEmployee.EmployeeNumber, newEmployee.FullName,
		newEmployee.NationalID, newEmployee.Email, newEmployee.PhoneNumber, newEmployee.Department,
		newEmployee.JobTitle, newEmployee.HireDate, string(newEmployee.EmploymentType), string(newEmployee.EmploymentStatus),
		newEmployee.BankName, newEmployee.BankAccount,
	))
	if err != nil {
		switch {
		case isUniqueViolation(err, "uk_employees_number"):
			return employee.Employee{}, employee.ErrEmployeeNumberExists
		case isUniqueViolation(err, "uk_employees_national_id"):
			return employee.Employee{}, employee.ErrNationalIDExists
		case isUniqueViolation(err, "uk_employees_email"):
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// ExistsByNationalIDOrEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByNationalIDOrEmail(ctx context.Context, companyID, nationalID, email string) (bool, bool, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT
			EXISTS(SELECT 1 FROM employees WHERE company_id = $1 AND national_id = $2),
			EXISTS(SELECT 1 FROM employees WHERE company_id = $1 AND lower(email) = lower($3))
	`

	var nationalIDTaken, emailTaken bool
	if err := q.QueryRow(ctx, query, companyID, nationalID, email).Scan(&nationalIDTaken, &emailTaken); err != nil {
		return false, false, fmt.Errorf("failed to check employee identity: %w", err)
	}
	return nationalIDTaken, emailTaken, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND employment_status = $2
		ORDER BY length(employee_number), employee_number
	`

	rows, err := q.Query(ctx, query, companyID, string(employee.EmploymentStatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// ========== EMPLOYEE NUMBER SEQUENCE ==========

type sequenceRepositoryImpl struct {
	db *database.DB
}

func NewSequenceRepository(db *database.DB) employee.SequenceRepository {
	return &sequenceRepositoryImpl{db: db}
}

var errSequenceOutsideTransaction = errors.New("employee number allocation requires a transaction")

func (s *sequenceRepositoryImpl) querier(ctx context.Context) (database.Querier, error) {
	tx, ok := database.TxFromContext(ctx)
	if !ok {
		return nil, errSequenceOutsideTransaction
	}
	return tx, nil
}

// SetLockTimeout is transaction scoped, like SET LOCAL.
func (s *sequenceRepositoryImpl) SetLockTimeout(ctx context.Context, timeout time.Duration) error {
	q, err := s.querier(ctx)
	if err != nil {
		return err
	}

	value := fmt.Sprintf("%dms", timeout.Milliseconds())
	if _, err := q.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, value); err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}
	return nil
}

func (s *sequenceRepositoryImpl) LockOrganizationCode(ctx context.Context, companyID string) (string, error) {
	q, err := s.querier(ctx)
	if err != nil {
		return "", err
	}

	var code string
	err = q.QueryRow(ctx, `SELECT code FROM companies WHERE id = $1 FOR UPDATE`, companyID).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrCompanyNotFound
		}
		if c, _ := pgErrorCode(err); c == pgLockNotAvailable {
			return "", employee.ErrSequenceLockTimeout
		}
		return "", fmt.Errorf("failed to lock company: %w", err)
	}
	return code, nil
}

// LatestEmployeeNumber compares suffixes as numbers, so ACME-2025-1000 beats
// ACME-2025-999 and ACME-2025-0005. Suffixes that are not a positive number are skipped.
func (s *sequenceRepositoryImpl) LatestEmployeeNumber(ctx context.Context, companyID string, prefix string) (string, bool, error) {
	q, err := s.querier(ctx)
	if err != nil {
		return "", false, err
	}

	query := `
		SELECT employee_number
		FROM employees
		WHERE company_id = $1
			AND employee_number LIKE $2 ESCAPE '\'
			AND substring(employee_number FROM $3) ~ '^0*[1-9][0-9]*$'
		ORDER BY substring(employee_number FROM $3)::numeric DESC
		LIMIT 1
		FOR UPDATE
	`

	var number string
	err = q.QueryRow(ctx, query, companyID, escapeLike(prefix)+"%", len(prefix)+1).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		if c, _ := pgErrorCode(err); c == pgLockNotAvailable {
			return "", false, employee.ErrSequenceLockTimeout
		}
		return "", false, fmt.Errorf("failed to read latest employee number: %w", err)
	}
	return number, true, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ========== ONBOARDING CHECKLIST ==========

type checklistRepositoryImpl struct {
	db *database.DB
}

func NewChecklistRepository(db *database.DB) employee.ChecklistRepository {
	return &checklistRepositoryImpl{db: db}
}

func (c *checklistRepositoryImpl) CreateItems(ctx context.Context, items []employee.ChecklistItem) error {
	if len(items) == 0 {
		return nil
	}
	q := GetQuerier(ctx, c.db)

	for _, item := range items {
		_, err := q.Exec(ctx, `
			INSERT INTO onboarding_checklists (employee_id, task, category, due_date, is_completed, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, item.EmployeeID, item.Task, item.Category, item.DueDate, item.IsCompleted, item.Position)
		if err != nil {
			return fmt.Errorf("failed to create checklist item %q: %w", item.Task, err)
		}
	}

	return nil
}

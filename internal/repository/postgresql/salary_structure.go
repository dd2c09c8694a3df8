package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryStructureRepository struct {
	db *database.DB
}

func NewSalaryStructureRepository(db *database.DB) salary.SalaryStructureRepository {
	return &salaryStructureRepository{db: db}
}

// ========== STRUCTURES ==========

func (r *salaryStructureRepository) Create(ctx context.Context, structure salary.SalaryStructure) (salary.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_structures (company_id, title, basic_salary, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, company_id, title, basic_salary, description, created_at, updated_at
	`

	var s salary.SalaryStructure
	err := q.QueryRow(ctx, query,
		structure.CompanyID, structure.Title, structure.BasicSalary, structure.Description,
	).Scan(&s.ID, &s.CompanyID, &s.Title, &s.BasicSalary, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return salary.SalaryStructure{}, fmt.Errorf("failed to create salary structure: %w", err)
	}

	return s, nil
}

func (r *salaryStructureRepository) GetByID(ctx context.Context, id string, companyID string) (salary.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, title, basic_salary, description, created_at, updated_at
		FROM salary_structures
		WHERE id = $1 AND company_id = $2
	`

	var s salary.SalaryStructure
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Title, &s.BasicSalary, &s.Description, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.SalaryStructure{}, salary.ErrSalaryStructureNotFound
		}
		return salary.SalaryStructure{}, fmt.Errorf("failed to get salary structure: %w", err)
	}

	if err := r.loadCollections(ctx, &s); err != nil {
		return salary.SalaryStructure{}, err
	}
	return s, nil
}

func (r *salaryStructureRepository) List(ctx context.Context, companyID string) ([]salary.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, title, basic_salary, description, created_at, updated_at
		FROM salary_structures
		WHERE company_id = $1
		ORDER BY title
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary structures: %w", err)
	}

	structures := make([]salary.SalaryStructure, 0)
	for rows.Next() {
		var s salary.SalaryStructure
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Title, &s.BasicSalary, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan salary structure: %w", err)
		}
		structures = append(structures, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The rows must be closed before the connection can run the collection queries
	for i := range structures {
		if err := r.loadCollections(ctx, &structures[i]); err != nil {
			return nil, err
		}
	}
	return structures, nil
}

func (r *salaryStructureRepository) UpdateHeader(ctx context.Context, structure salary.SalaryStructure) (salary.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_structures
		SET title = $1, basic_salary = $2, description = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5
		RETURNING id, company_id, title, basic_salary, description, created_at, updated_at
	`

	var s salary.SalaryStructure
	err := q.QueryRow(ctx, query,
		structure.Title, structure.BasicSalary, structure.Description, structure.ID, structure.CompanyID,
	).Scan(&s.ID, &s.CompanyID, &s.Title, &s.BasicSalary, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.SalaryStructure{}, salary.ErrSalaryStructureNotFound
		}
		return salary.SalaryStructure{}, fmt.Errorf("failed to update salary structure: %w", err)
	}

	return s, nil
}

func (r *salaryStructureRepository) loadCollections(ctx context.Context, s *salary.SalaryStructure) error {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, structure_id, name, amount, formula, taxable, position
		FROM salary_allowances
		WHERE structure_id = $1
		ORDER BY position
	`, s.ID)
	if err != nil {
		return fmt.Errorf("failed to load allowances: %w", err)
	}
	s.Allowances, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (salary.Allowance, error) {
		var a salary.Allowance
		err := row.Scan(&a.ID, &a.StructureID, &a.Name, &a.Amount, &a.Formula, &a.Taxable, &a.Position)
		return a, err
	})
	if err != nil {
		return fmt.Errorf("failed to scan allowances: %w", err)
	}

	rows, err = q.Query(ctx, `
		SELECT id, structure_id, name, amount, benefit_type, taxable, notes, position
		FROM salary_benefits
		WHERE structure_id = $1
		ORDER BY position
	`, s.ID)
	if err != nil {
		return fmt.Errorf("failed to load benefits: %w", err)
	}
	s.Benefits, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (salary.Benefit, error) {
		var b salary.Benefit
		err := row.Scan(&b.ID, &b.StructureID, &b.Name, &b.Amount, &b.BenefitType, &b.Taxable, &b.Notes, &b.Position)
		return b, err
	})
	if err != nil {
		return fmt.Errorf("failed to scan benefits: %w", err)
	}

	return nil
}

func (r *salaryStructureRepository) ReplaceAllowances(ctx context.Context, structureID string, allowances []salary.Allowance) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM salary_allowances WHERE structure_id = $1`, structureID); err != nil {
		return fmt.Errorf("failed to clear allowances: %w", err)
	}

	for _, a := range allowances {
		_, err := q.Exec(ctx, `
			INSERT INTO salary_allowances (structure_id, name, amount, formula, taxable, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, structureID, a.Name, a.Amount, a.Formula, a.Taxable, a.Position)
		if err != nil {
			return fmt.Errorf("failed to insert allowance %q: %w", a.Name, err)
		}
	}

	return nil
}

func (r *salaryStructureRepository) ReplaceBenefits(ctx context.Context, structureID string, benefits []salary.Benefit) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM salary_benefits WHERE structure_id = $1`, structureID); err != nil {
		return fmt.Errorf("failed to clear benefits: %w", err)
	}

	for _, b := range benefits {
		_, err := q.Exec(ctx, `
			INSERT INTO salary_benefits (structure_id, name, amount, benefit_type, taxable, notes, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, structureID, b.Name, b.Amount, b.BenefitType, b.Taxable, b.Notes, b.Position)
		if err != nil {
			return fmt.Errorf("failed to insert benefit %q: %w", b.Name, err)
		}
	}

	return nil
}

// ========== ASSIGNMENTS ==========

const assignmentColumns = `a.id, a.employee_id, a.structure_id, a.assigned_by, a.effective_from, a.effective_to, a.is_active, a.assigned_at, a.notes`

func scanAssignment(row pgx.Row) (salary.Assignment, error) {
	var a salary.Assignment
	err := row.Scan(&a.ID, &a.EmployeeID, &a.StructureID, &a.AssignedBy, &a.EffectiveFrom, &a.EffectiveTo, &a.IsActive, &a.AssignedAt, &a.Notes)
	return a, err
}

func (r *salaryStructureRepository) GetActiveStructure(ctx context.Context, employeeID string, companyID string) (salary.SalaryStructure, salary.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM employee_salary_assignments a
		JOIN salary_structures s ON s.id = a.structure_id
		WHERE a.employee_id = $1 AND a.is_active AND s.company_id = $2
	`

	assignment, err := scanAssignment(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.SalaryStructure{}, salary.Assignment{}, salary.ErrNoActiveSalaryStructure
		}
		return salary.SalaryStructure{}, salary.Assignment{}, fmt.Errorf("failed to resolve salary assignment: %w", err)
	}

	structure, err := r.GetByID(ctx, assignment.StructureID, companyID)
	if err != nil {
		return salary.SalaryStructure{}, salary.Assignment{}, err
	}

	return structure, assignment, nil
}

// GetActiveAssignment locks the active row so a concurrent reassignment waits.
func (r *salaryStructureRepository) GetActiveAssignment(ctx context.Context, employeeID string) (salary.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM employee_salary_assignments a
		WHERE a.employee_id = $1 AND a.is_active
		FOR UPDATE
	`

	assignment, err := scanAssignment(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Assignment{}, salary.ErrNoActiveSalaryStructure
		}
		return salary.Assignment{}, fmt.Errorf("failed to get active assignment: %w", err)
	}

	return assignment, nil
}

func (r *salaryStructureRepository) DeactivateAssignment(ctx context.Context, assignmentID string, effectiveTo time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employee_salary_assignments
		SET is_active = FALSE, effective_to = $1
		WHERE id = $2 AND is_active
	`, effectiveTo, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to deactivate assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrAssignmentConflict
	}

	return nil
}

func (r *salaryStructureRepository) CreateAssignment(ctx context.Context, assignment salary.Assignment) (salary.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_salary_assignments AS a (employee_id, structure_id, assigned_by, effective_from, is_active, notes)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		RETURNING ` + assignmentColumns

	created, err := scanAssignment(q.QueryRow(ctx, query,
		assignment.EmployeeID, assignment.StructureID, assignment.AssignedBy, assignment.EffectiveFrom, assignment.Notes,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_salary_assignment_active") {
			return salary.Assignment{}, salary.ErrAssignmentConflict
		}
		if code, _ := pgErrorCode(err); code == pgForeignKeyMissing {
			return salary.Assignment{}, salary.ErrEmployeeNotFound
		}
		return salary.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	return created, nil
}

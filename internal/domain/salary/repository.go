package salary

import (
	"context"
	"time"
)

type SalaryStructureRepository interface {
	Create(ctx context.Context, structure SalaryStructure) (SalaryStructure, error)
	GetByID(ctx context.Context, id string, companyID string) (SalaryStructure, error)
	List(ctx context.Context, companyID string) ([]SalaryStructure, error)
	UpdateHeader(ctx context.Context, structure SalaryStructure) (SalaryStructure, error)

	// ReplaceAllowances and ReplaceBenefits delete the whole collection and insert
	// the given one. Callers run them inside a transaction.
	ReplaceAllowances(ctx context.Context, structureID string, allowances []Allowance) error
	ReplaceBenefits(ctx context.Context, structureID string, benefits []Benefit) error

	// GetActiveStructure resolves the employee's single active assignment.
	// Returns ErrNoActiveSalaryStructure when there is none.
	GetActiveStructure(ctx context.Context, employeeID string, companyID string) (SalaryStructure, Assignment, error)
	GetActiveAssignment(ctx context.Context, employeeID string) (Assignment, error)
	DeactivateAssignment(ctx context.Context, assignmentID string, effectiveTo time.Time) error
	CreateAssignment(ctx context.Context, assignment Assignment) (Assignment, error)
}

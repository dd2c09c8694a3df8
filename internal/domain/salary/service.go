package salary

import "context"

type SalaryStructureService interface {
	Create(ctx context.Context, req CreateSalaryStructureRequest) (SalaryStructureResponse, error)
	GetByID(ctx context.Context, id string) (SalaryStructureResponse, error)
	List(ctx context.Context) ([]SalaryStructureResponse, error)
	Update(ctx context.Context, req UpdateSalaryStructureRequest) (SalaryStructureResponse, error)
	AssignToEmployee(ctx context.Context, req AssignSalaryStructureRequest) (EmployeeSalaryResponse, error)
	GetEmployeeSalary(ctx context.Context, employeeID string) (EmployeeSalaryResponse, error)
}

// Resolver returns the structure an employee is paid from.
type Resolver interface {
	Resolve(ctx context.Context, companyID, employeeID string) (SalaryStructure, error)
}

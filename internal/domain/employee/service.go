package employee

import "context"

type EmployeeService interface {
	Onboard(ctx context.Context, req OnboardEmployeeRequest) (OnboardingResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
}

// NumberAllocator hands out CODE-YEAR-NNN employee numbers.
type NumberAllocator interface {
	NextEmployeeNumber(ctx context.Context, companyID string, year int) (string, error)
}

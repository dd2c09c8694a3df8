package employee

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByNationalIDOrEmail(ctx context.Context, companyID, nationalID, email string) (nationalIDTaken bool, emailTaken bool, err error)
	// ListActive returns active employees ordered by employee number.
	ListActive(ctx context.Context, companyID string) ([]Employee, error)
}

// SequenceRepository backs employee number allocation. Every method must be
// called with a transaction context; the locks are held until it ends.
type SequenceRepository interface {
	SetLockTimeout(ctx context.Context, timeout time.Duration) error
	LockOrganizationCode(ctx context.Context, companyID string) (string, error)
	// LatestEmployeeNumber returns the highest number starting with prefix, locked
	// FOR UPDATE, and false when none exists.
	LatestEmployeeNumber(ctx context.Context, companyID string, prefix string) (string, bool, error)
}

type ChecklistRepository interface {
	CreateItems(ctx context.Context, items []ChecklistItem) error
}

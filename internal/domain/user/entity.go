package user

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Runs payroll and onboarding
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager checks if user is manager or owner
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}

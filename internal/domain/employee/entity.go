package employee

import (
	"time"
)

type Employee struct {
	ID               string
	CompanyID        string
	UserID           *string
	EmployeeNumber   string
	FullName         string
	NationalID       string
	Email            string
	PhoneNumber      *string
	Department       *string
	JobTitle         *string
	HireDate         time.Time
	EmploymentType   EmploymentType
	EmploymentStatus EmploymentStatus
	BankName         *string
	BankAccount      *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentType string

const (
	EmploymentTypePermanent  EmploymentType = "permanent"
	EmploymentTypeProbation  EmploymentType = "probation"
	EmploymentTypeContract   EmploymentType = "contract"
	EmploymentTypeInternship EmploymentType = "internship"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusSuspended  EmploymentStatus = "suspended"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// ChecklistItem - one onboarding task created for a new hire
type ChecklistItem struct {
	ID          string
	EmployeeID  string
	Task        string
	Category    string
	DueDate     time.Time
	IsCompleted bool
	Position    int
}

const EventEmployeeOnboarded = "employee.onboarded"

package audit

import "time"

const (
	ActionPayrollGenerated = "payroll.generated"
	ActionPayrollApproved  = "payroll.approved"
	ActionPayrollPaid      = "payroll.paid"
	ActionEmployeeOnboard  = "employee.onboarded"
	ActionSalaryAssigned   = "salary.assigned"
)

const (
	EntityPayrollRecord = "payroll_record"
	EntityEmployee      = "employee"
)

type Entry struct {
	ID         string
	CompanyID  string
	UserID     *string
	Action     string
	EntityType string
	EntityID   string
	Payload    any
	CreatedAt  time.Time
}

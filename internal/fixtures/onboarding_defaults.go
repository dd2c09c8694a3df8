package fixtures

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// ==========================================
// DEFAULT LEAVE TYPES
// ==========================================

// GetDefaultLeaveTypes returns the statutory leave types of the Kenyan Employment Act.
// They are created for a company the first time it onboards an employee without
// having configured any leave types of its own.
func GetDefaultLeaveTypes(companyID string) []leave.LeaveType {
	return []leave.LeaveType{
		// Annual leave - 21 working days per year
		{CompanyID: companyID, Name: "Annual Leave", Code: "ANNUAL", DefaultDays: decimal.NewFromInt(21), IsActive: true},
		// Sick leave - 7 days full pay and 7 days half pay
		{CompanyID: companyID, Name: "Sick Leave", Code: "SICK", DefaultDays: decimal.NewFromInt(14), IsActive: true},
		{CompanyID: companyID, Name: "Maternity Leave", Code: "MATERNITY", DefaultDays: decimal.NewFromInt(90), IsActive: true},
		{CompanyID: companyID, Name: "Paternity Leave", Code: "PATERNITY", DefaultDays: decimal.NewFromInt(14), IsActive: true},
		{CompanyID: companyID, Name: "Compassionate Leave", Code: "COMPASSIONATE", DefaultDays: decimal.NewFromInt(5), IsActive: true},
	}
}

// ==========================================
// DEFAULT ONBOARDING CHECKLIST
// ==========================================

type checklistTemplate struct {
	task     string
	category string
	// dueInDays counts from the hire date
	dueInDays int
}

var defaultChecklist = []checklistTemplate{
	{"Sign employment contract", "documents", 0},
	{"Submit copy of national ID", "documents", 0},
	{"Submit KRA PIN certificate", "documents", 3},
	{"Register NSSF and SHIF numbers", "statutory", 7},
	{"Provide bank account details for payroll", "payroll", 7},
	{"Set up workstation and email account", "it", 1},
	{"Complete health and safety induction", "training", 5},
	{"Meet line manager and review job description", "orientation", 2},
	{"Review company policies handbook", "orientation", 14},
}

// GetDefaultOnboardingChecklist returns the standard checklist for a new hire.
func GetDefaultOnboardingChecklist(employeeID string, hireDate time.Time) []employee.ChecklistItem {
	items := make([]employee.ChecklistItem, 0, len(defaultChecklist))
	for i, t := range defaultChecklist {
		items = append(items, employee.ChecklistItem{
			EmployeeID: employeeID,
			Task:       t.task,
			Category:   t.category,
			DueDate:    hireDate.AddDate(0, 0, t.dueInDays),
			Position:   i,
		})
	}
	return items
}

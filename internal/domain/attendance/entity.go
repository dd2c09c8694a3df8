package attendance

import (
	"github.com/shopspring/decimal"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
	StatusOnLeave = "on_leave"
)

// Summary - attendance aggregated for one employee and payroll period
type Summary struct {
	EmployeeID    string
	PeriodMonth   int
	PeriodYear    int
	OvertimeHours decimal.Decimal
	AbsentDays    int
}

package leave

import (
	"github.com/shopspring/decimal"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	CompanyID   string
	Name        string
	Code        string
	DefaultDays decimal.Decimal
	IsActive    bool
}

// LeaveBalance - days allocated to an employee for one leave type and year
type LeaveBalance struct {
	ID            string
	EmployeeID    string
	LeaveTypeID   string
	Year          int
	AllocatedDays decimal.Decimal
	UsedDays      decimal.Decimal
}

// ProratedDays scales a yearly allowance by the months left in the hire year,
// counting the hire month, rounded to half days.
func ProratedDays(yearly decimal.Decimal, hireMonth int) decimal.Decimal {
	if hireMonth < 1 || hireMonth > 12 {
		return yearly
	}
	monthsLeft := decimal.NewFromInt(int64(13 - hireMonth))
	days := yearly.Mul(monthsLeft).Div(decimal.NewFromInt(12))
	return days.Mul(decimal.NewFromInt(2)).Round(0).Div(decimal.NewFromInt(2))
}

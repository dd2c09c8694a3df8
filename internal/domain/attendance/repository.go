package attendance

import "context"

type AttendanceRepository interface {
	// SumOvertimeAndAbsences returns zeros when the employee has no attendance rows in the period.
	SumOvertimeAndAbsences(ctx context.Context, employeeID string, month, year int) (Summary, error)
}

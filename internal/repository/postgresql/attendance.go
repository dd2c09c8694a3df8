package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// SumOvertimeAndAbsences covers the calendar month as the half-open range
// [first day, first day of next month).
func (r *attendanceRepositoryImpl) SumOvertimeAndAbsences(ctx context.Context, employeeID string, month, year int) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := `
		SELECT
			COALESCE(SUM(overtime_hours), 0),
			COUNT(*) FILTER (WHERE status = $4)
		FROM attendances
		WHERE employee_id = $1 AND date >= $2 AND date < $3
	`

	summary := attendance.Summary{EmployeeID: employeeID, PeriodMonth: month, PeriodYear: year}
	err := q.QueryRow(ctx, query, employeeID, from, to, attendance.StatusAbsent).Scan(
		&summary.OvertimeHours, &summary.AbsentDays,
	)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to aggregate attendance: %w", err)
	}

	return summary, nil
}

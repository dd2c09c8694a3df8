package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollRecordColumns = `
	pr.id, pr.company_id, pr.employee_id, pr.period_month, pr.period_year,
	pr.basic_salary, pr.housing_allowance, pr.transport_allowance, pr.medical_allowance,
	pr.overtime_hours, pr.overtime_pay, pr.absent_days, pr.absence_deduction, pr.gross_pay,
	pr.paye, pr.nssf_employee, pr.shif, pr.housing_levy, pr.personal_relief,
	pr.total_deductions, pr.net_pay, pr.status, pr.payment_method,
	pr.approved_by, pr.approved_at, pr.paid_by, pr.paid_at, pr.created_at, pr.updated_at,
	e.full_name, e.employee_number
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.EmployeeID, &r.PeriodMonth, &r.PeriodYear,
		&r.BasicSalary, &r.HousingAllowance, &r.TransportAllowance, &r.MedicalAllowance,
		&r.OvertimeHours, &r.OvertimePay, &r.AbsentDays, &r.AbsenceDeduction, &r.GrossPay,
		&r.PAYE, &r.NSSFEmployee, &r.SHIF, &r.HousingLevy, &r.PersonalRelief,
		&r.TotalDeductions, &r.NetPay, &r.Status, &r.PaymentMethod,
		&r.ApprovedBy, &r.ApprovedAt, &r.PaidBy, &r.PaidAt, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.EmployeeNumber,
	)
	return r, err
}

// Upsert relies on the (employee_id, period_month, period_year) constraint. The
// conflict update only fires for drafts, so zero rows back means the record is locked.
func (r *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH upserted AS (
			INSERT INTO payroll_records (
				company_id, employee_id, period_month, period_year,
				basic_salary, housing_allowance, transport_allowance, medical_allowance,
				overtime_hours, overtime_pay, absent_days, absence_deduction, gross_pay,
				paye, nssf_employee, shif, housing_levy, personal_relief,
				total_deductions, net_pay, status
			) VALUES (
				$1, $2, $3, $4,
				$5, $6, $7, $8,
				$9, $10, $11, $12, $13,
				$14, $15, $16, $17, $18,
				$19, $20, 'draft'
			)
			ON CONFLICT ON CONSTRAINT uk_employee_period DO UPDATE SET
				basic_salary = EXCLUDED.basic_salary,
				housing_allowance = EXCLUDED.housing_allowance,
				transport_allowance = EXCLUDED.transport_allowance,
				medical_allowance = EXCLUDED.medical_allowance,
				overtime_hours = EXCLUDED.overtime_hours,
				overtime_pay = EXCLUDED.overtime_pay,
				absent_days = EXCLUDED.absent_days,
				absence_deduction = EXCLUDED.absence_deduction,
				gross_pay = EXCLUDED.gross_pay,
				paye = EXCLUDED.paye,
				nssf_employee = EXCLUDED.nssf_employee,
				shif = EXCLUDED.shif,
				housing_levy = EXCLUDED.housing_levy,
				personal_relief = EXCLUDED.personal_relief,
				total_deductions = EXCLUDED.total_deductions,
				net_pay = EXCLUDED.net_pay,
				updated_at = NOW()
			WHERE payroll_records.status = 'draft'
			RETURNING *
		)
		SELECT ` + payrollRecordColumns + `
		FROM upserted pr
		JOIN employees e ON e.id = pr.employee_id
	`

	created, err := scanPayrollRecord(q.QueryRow(ctx, query,
		record.CompanyID, record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		record.BasicSalary, record.HousingAllowance, record.TransportAllowance, record.MedicalAllowance,
		record.OvertimeHours, record.OvertimePay, record.AbsentDays, record.AbsenceDeduction, record.GrossPay,
		record.PAYE, record.NSSFEmployee, record.SHIF, record.HousingLevy, record.PersonalRelief,
		record.TotalDeductions, record.NetPay,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordLocked
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.id = $1 AND pr.company_id = $2
	`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3 AND pr.company_id = $4
	`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

func (r *payrollRepository) ListByPeriod(ctx context.Context, companyID string, month, year int) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.company_id = $1 AND pr.period_month = $2 AND pr.period_year = $3
		ORDER BY length(e.employee_number), e.employee_number
	`

	rows, err := q.Query(ctx, query, companyID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		record, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// transition applies a guarded status update. When nothing matched it tells
// a missing record apart from one in the wrong status.
func (r *payrollRepository) transition(ctx context.Context, id, companyID string, query string, args ...any) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err == nil {
		return r.GetByID(ctx, updatedID, companyID)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll status: %w", err)
	}

	var exists bool
	err = q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payroll_records WHERE id = $1 AND company_id = $2)`,
		id, companyID,
	).Scan(&exists)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to check payroll record: %w", err)
	}
	if !exists {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return payroll.PayrollRecord{}, payroll.ErrInvalidStatusTransition
}

func (r *payrollRepository) Approve(ctx context.Context, id string, companyID string, approvedBy string) (payroll.PayrollRecord, error) {
	query := `
		UPDATE payroll_records
		SET status = 'approved', approved_by = $3, approved_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'draft'
		RETURNING id
	`
	return r.transition(ctx, id, companyID, query, id, companyID, approvedBy)
}

func (r *payrollRepository) MarkPaid(ctx context.Context, id string, companyID string, method payroll.PaymentMethod, paidBy string) (payroll.PayrollRecord, error) {
	query := `
		UPDATE payroll_records
		SET status = 'paid', payment_method = $3, paid_by = $4, paid_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'approved'
		RETURNING id
	`
	return r.transition(ctx, id, companyID, query, id, companyID, string(method), paidBy)
}

func (r *payrollRepository) GetSummary(ctx context.Context, companyID string, month, year int) (payroll.PayrollSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(basic_salary), 0),
			COALESCE(SUM(housing_allowance), 0),
			COALESCE(SUM(transport_allowance), 0),
			COALESCE(SUM(medical_allowance), 0),
			COALESCE(SUM(overtime_hours), 0),
			COALESCE(SUM(overtime_pay), 0),
			COALESCE(SUM(absent_days), 0),
			COALESCE(SUM(absence_deduction), 0),
			COALESCE(SUM(gross_pay), 0),
			COALESCE(SUM(paye), 0),
			COALESCE(SUM(nssf_employee), 0),
			COALESCE(SUM(shif), 0),
			COALESCE(SUM(housing_levy), 0),
			COALESCE(SUM(personal_relief), 0),
			COALESCE(SUM(total_deductions), 0),
			COALESCE(SUM(net_pay), 0),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'paid')
		FROM payroll_records
		WHERE company_id = $1 AND period_month = $2 AND period_year = $3
	`

	s := payroll.PayrollSummaryResponse{PeriodMonth: month, PeriodYear: year}
	err := q.QueryRow(ctx, query, companyID, month, year).Scan(
		&s.TotalEmployees, &s.TotalBasicSalary,
		&s.TotalHousingAllowance, &s.TotalTransportAllowance, &s.TotalMedicalAllowance,
		&s.TotalOvertimeHours, &s.TotalOvertimePay, &s.TotalAbsentDays, &s.TotalAbsenceDeduction,
		&s.TotalGrossPay, &s.TotalPAYE, &s.TotalNSSF, &s.TotalSHIF,
		&s.TotalHousingLevy, &s.TotalPersonalRelief, &s.TotalDeductions, &s.TotalNetPay,
		&s.DraftCount, &s.ApprovedCount, &s.PaidCount,
	)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return s, nil
}

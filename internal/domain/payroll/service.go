package payroll

import "context"

// ProgressFunc receives each employee's outcome as soon as it is known.
type ProgressFunc func(item BulkPayrollItem)

type PayrollService interface {
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (PayrollRecordResponse, error)
	GenerateBulkPayroll(ctx context.Context, req GenerateBulkPayrollRequest, onItem ProgressFunc) (BulkPayrollResult, error)
	ListByPeriod(ctx context.Context, month, year int) ([]PayrollRecordResponse, error)
	GetPayslip(ctx context.Context, employeeID string, month, year int) (PayslipResponse, error)
	ApprovePayroll(ctx context.Context, id string) (PayrollRecordResponse, error)
	ProcessPayment(ctx context.Context, req ProcessPaymentRequest) (PayrollRecordResponse, error)
	GetPayrollSummary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
}

package payroll

import "context"

// PayrollRepository defines data access methods for payroll records.
// All methods include companyID parameter to prevent cross-company data access.
type PayrollRepository interface {
	// Upsert creates the record for (employee, month, year) or overwrites a draft one.
	// Returns ErrPayrollRecordLocked when the existing record is approved or paid.
	Upsert(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (PayrollRecord, error)
	ListByPeriod(ctx context.Context, companyID string, month, year int) ([]PayrollRecord, error)
	Approve(ctx context.Context, id string, companyID string, approvedBy string) (PayrollRecord, error)
	MarkPaid(ctx context.Context, id string, companyID string, method PaymentMethod, paidBy string) (PayrollRecord, error)
	GetSummary(ctx context.Context, companyID string, month, year int) (PayrollSummaryResponse, error)
}

// SummaryCache stores period summaries. Implementations must treat failures as misses.
type SummaryCache interface {
	GetOrLoad(ctx context.Context, companyID string, month, year int, load func(ctx context.Context) (PayrollSummaryResponse, error)) (PayrollSummaryResponse, error)
	Invalidate(ctx context.Context, companyID string, month, year int)
}

package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/messaging/outbox"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

const defaultBulkWorkers = 4

// Options carries the optional collaborators of the payroll service.
type Options struct {
	BulkWorkers int
	// Cache may be nil; summaries are then always read from the database.
	Cache  payroll.SummaryCache
	Logger *slog.Logger
}

type PayrollServiceImpl struct {
	transactor     database.Transactor
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	resolver       salary.Resolver
	attendanceRepo attendance.AttendanceRepository
	auditRepo      audit.AuditRepository
	events         outbox.Writer
	cache          payroll.SummaryCache
	earnings       *EarningsCalculator
	statutory      *StatutoryCalculator
	bulkWorkers    int
	logger         *slog.Logger
}

func NewPayrollService(
	transactor database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	resolver salary.Resolver,
	attendanceRepo attendance.AttendanceRepository,
	auditRepo audit.AuditRepository,
	events outbox.Writer,
	policy payroll.Policy,
	opts Options,
) payroll.PayrollService {
	if opts.BulkWorkers <= 0 {
		opts.BulkWorkers = defaultBulkWorkers
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &PayrollServiceImpl{
		transactor:     transactor,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		resolver:       resolver,
		attendanceRepo: attendanceRepo,
		auditRepo:      auditRepo,
		events:         events,
		cache:          opts.Cache,
		earnings:       NewEarningsCalculator(policy.Earnings),
		statutory:      NewStatutoryCalculator(policy.Statutory),
		bulkWorkers:    opts.BulkWorkers,
		logger:         opts.Logger.With(slog.String("service", "payroll")),
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", user.ErrInvalidToken, err)
	}
	if token == nil {
		return "", "", user.ErrInvalidToken
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", user.ErrCompanyIDRequired
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if emp.EmploymentStatus != employee.EmploymentStatusActive {
		return payroll.PayrollRecordResponse{}, payroll.ErrEmployeeNotActive
	}

	record, err := s.generateForEmployee(ctx, companyID, userID, emp, req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	s.invalidateSummary(ctx, companyID, req.PeriodMonth, req.PeriodYear)

	return toRecordResponse(record, &emp), nil
}

// calculate runs resolver, aggregator and both calculators. It reads only.
func (s *PayrollServiceImpl) calculate(ctx context.Context, companyID string, emp employee.Employee, month, year int) (payroll.PayrollRecord, error) {
	structure, err := s.resolver.Resolve(ctx, companyID, emp.ID)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	summary, err := s.attendanceRepo.SumOvertimeAndAbsences(ctx, emp.ID, month, year)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("aggregate attendance: %w", err)
	}

	fixed := structure.FixedAllowances()
	earnings, err := s.earnings.Calculate(payroll.EarningsInput{
		BasicSalary:        structure.BasicSalary,
		HousingAllowance:   fixed.Housing,
		TransportAllowance: fixed.Transport,
		MedicalAllowance:   fixed.Medical,
		OvertimeHours:      summary.OvertimeHours,
		AbsentDays:         summary.AbsentDays,
	})
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	deductions, err := s.statutory.Calculate(earnings.GrossPay)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	return payroll.NewPayrollRecord(companyID, emp.ID, month, year, earnings, deductions), nil
}

// generateForEmployee calculates and stores one record in its own transaction
// together with its audit entry and outbox event.
func (s *PayrollServiceImpl) generateForEmployee(ctx context.Context, companyID, userID string, emp employee.Employee, month, year int) (payroll.PayrollRecord, error) {
	record, err := s.calculate(ctx, companyID, emp, month, year)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	var saved payroll.PayrollRecord
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		saved, err = s.payrollRepo.Upsert(txCtx, record)
		if err != nil {
			return err
		}
		return s.recordChange(txCtx, companyID, userID, audit.ActionPayrollGenerated, payroll.EventRecordGenerated, saved)
	})
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	return saved, nil
}

// ========== QUERIES ==========

func (s *PayrollServiceImpl) ListByPeriod(ctx context.Context, month, year int) ([]payroll.PayrollRecordResponse, error) {
	if err := validator.ValidatePeriod(month, year).Err(); err != nil {
		return nil, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.ListByPeriod(ctx, companyID, month, year)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toRecordResponse(r, nil))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, employeeID string, month, year int) (payroll.PayslipResponse, error) {
	errs := validator.ValidatePeriod(month, year)
	if !validator.IsValidUUID(employeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if err := errs.Err(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	record, err := s.payrollRepo.GetByEmployeePeriod(ctx, employeeID, month, year, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return toPayslipResponse(record), nil
}

func (s *PayrollServiceImpl) GetPayrollSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	if err := validator.ValidatePeriod(month, year).Err(); err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	load := func(ctx context.Context) (payroll.PayrollSummaryResponse, error) {
		return s.payrollRepo.GetSummary(ctx, companyID, month, year)
	}
	if s.cache == nil {
		return load(ctx)
	}
	return s.cache.GetOrLoad(ctx, companyID, month, year, load)
}

// ========== LIFECYCLE ==========

func (s *PayrollServiceImpl) ApprovePayroll(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	if !validator.IsValidUUID(id) {
		var errs validator.ValidationErrors
		errs.Add("id", "must be a valid UUID")
		return payroll.PayrollRecordResponse{}, errs
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	var approved payroll.PayrollRecord
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		approved, err = s.payrollRepo.Approve(txCtx, id, companyID, userID)
		if err != nil {
			return err
		}
		return s.recordChange(txCtx, companyID, userID, audit.ActionPayrollApproved, payroll.EventRecordApproved, approved)
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	s.invalidateSummary(ctx, companyID, approved.PeriodMonth, approved.PeriodYear)

	return toRecordResponse(approved, nil), nil
}

func (s *PayrollServiceImpl) ProcessPayment(ctx context.Context, req payroll.ProcessPaymentRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	var paid payroll.PayrollRecord
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		paid, err = s.payrollRepo.MarkPaid(txCtx, req.ID, companyID, payroll.PaymentMethod(req.PaymentMethod), userID)
		if err != nil {
			return err
		}
		return s.recordChange(txCtx, companyID, userID, audit.ActionPayrollPaid, payroll.EventRecordPaid, paid)
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	s.invalidateSummary(ctx, companyID, paid.PeriodMonth, paid.PeriodYear)

	return toRecordResponse(paid, nil), nil
}

// ========== HELPERS ==========

type recordEvent struct {
	RecordID    string `json:"record_id"`
	CompanyID   string `json:"company_id"`
	EmployeeID  string `json:"employee_id"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	Status      string `json:"status"`
	GrossPay    string `json:"gross_pay"`
	NetPay      string `json:"net_pay"`
}

// recordChange writes the audit entry and outbox event for a stored record.
// Must be called with the transaction context of the write it describes.
func (s *PayrollServiceImpl) recordChange(txCtx context.Context, companyID, userID, action, eventType string, record payroll.PayrollRecord) error {
	payload := recordEvent{
		RecordID:    record.ID,
		CompanyID:   companyID,
		EmployeeID:  record.EmployeeID,
		PeriodMonth: record.PeriodMonth,
		PeriodYear:  record.PeriodYear,
		Status:      string(record.Status),
		GrossPay:    record.GrossPay.StringFixed(2),
		NetPay:      record.NetPay.StringFixed(2),
	}

	entry := audit.Entry{
		CompanyID:  companyID,
		Action:     action,
		EntityType: audit.EntityPayrollRecord,
		EntityID:   record.ID,
		Payload:    payload,
	}
	if userID != "" {
		entry.UserID = &userID
	}
	if err := s.auditRepo.Record(txCtx, entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	event, err := outbox.NewEvent(audit.EntityPayrollRecord, record.ID, eventType, payload)
	if err != nil {
		return err
	}
	if err := s.events.Create(txCtx, event); err != nil {
		return fmt.Errorf("enqueue %s event: %w", eventType, err)
	}
	return nil
}

func (s *PayrollServiceImpl) invalidateSummary(ctx context.Context, companyID string, month, year int) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, companyID, month, year)
}

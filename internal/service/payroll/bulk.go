package payroll

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"golang.org/x/sync/errgroup"
)

const genericFailureMessage = "payroll could not be generated for this employee"

// GenerateBulkPayroll runs the pipeline for every active employee. Each employee is
// stored in its own transaction and a failure only marks that employee's item.
// Cancelling ctx stops dispatch; employees not yet started are reported as cancelled.
func (s *PayrollServiceImpl) GenerateBulkPayroll(ctx context.Context, req payroll.GenerateBulkPayrollRequest, onItem payroll.ProgressFunc) (payroll.BulkPayrollResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkPayrollResult{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.BulkPayrollResult{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx, companyID)
	if err != nil {
		return payroll.BulkPayrollResult{}, err
	}

	s.logger.Info("bulk payroll run started",
		slog.String("company_id", companyID),
		slog.Int("period_month", req.PeriodMonth),
		slog.Int("period_year", req.PeriodYear),
		slog.Int("employees", len(employees)),
		slog.Int("workers", s.bulkWorkers),
	)

	items := make([]payroll.BulkPayrollItem, len(employees))

	var progressMu sync.Mutex
	emit := func(item payroll.BulkPayrollItem) {
		if onItem == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		onItem(item)
	}

	var g errgroup.Group
	g.SetLimit(s.bulkWorkers)
	for i, emp := range employees {
		if ctx.Err() != nil {
			items[i] = cancelledItem(emp)
			emit(items[i])
			continue
		}
		g.Go(func() error {
			items[i] = s.runOne(ctx, companyID, userID, emp, req.PeriodMonth, req.PeriodYear)
			emit(items[i])
			return nil
		})
	}
	_ = g.Wait()

	slices.SortStableFunc(items, func(a, b payroll.BulkPayrollItem) int {
		return compareEmployeeNumbers(a.EmployeeNumber, b.EmployeeNumber)
	})

	result := payroll.BulkPayrollResult{
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		Total:       len(items),
		Items:       items,
	}
	for _, item := range items {
		if item.Outcome == payroll.BulkOutcomeSuccess {
			result.SuccessCount++
		} else {
			result.FailedCount++
		}
	}

	if result.SuccessCount > 0 {
		s.invalidateSummary(context.WithoutCancel(ctx), companyID, req.PeriodMonth, req.PeriodYear)
	}

	s.logger.Info("bulk payroll run finished",
		slog.String("company_id", companyID),
		slog.Int("success", result.SuccessCount),
		slog.Int("failed", result.FailedCount),
	)

	return result, nil
}

// runOne never returns an error; every failure becomes the employee's item.
func (s *PayrollServiceImpl) runOne(ctx context.Context, companyID, userID string, emp employee.Employee, month, year int) payroll.BulkPayrollItem {
	if ctx.Err() != nil {
		return cancelledItem(emp)
	}

	record, err := s.generateForEmployee(ctx, companyID, userID, emp, month, year)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return cancelledItem(emp)
		}
		s.logger.Warn("payroll generation failed for employee",
			slog.String("company_id", companyID),
			slog.String("employee_id", emp.ID),
			slog.String("employee_number", emp.EmployeeNumber),
			slog.String("error", err.Error()),
		)
		return payroll.BulkPayrollItem{
			EmployeeID:     emp.ID,
			EmployeeNumber: emp.EmployeeNumber,
			EmployeeName:   emp.FullName,
			Outcome:        payroll.BulkOutcomeFailed,
			Message:        failureMessage(err),
		}
	}

	resp := toRecordResponse(record, &emp)
	return payroll.BulkPayrollItem{
		EmployeeID:     emp.ID,
		EmployeeNumber: emp.EmployeeNumber,
		EmployeeName:   emp.FullName,
		Outcome:        payroll.BulkOutcomeSuccess,
		Record:         &resp,
	}
}

func cancelledItem(emp employee.Employee) payroll.BulkPayrollItem {
	return payroll.BulkPayrollItem{
		EmployeeID:     emp.ID,
		EmployeeNumber: emp.EmployeeNumber,
		EmployeeName:   emp.FullName,
		Outcome:        payroll.BulkOutcomeFailed,
		Message:        payroll.ErrPayrollRunCancelled.Message,
	}
}

// failureMessage keeps driver errors out of the result list.
func failureMessage(err error) string {
	if appErr, ok := apperror.As(err); ok && appErr.Kind != apperror.KindInternal {
		return appErr.Message
	}
	return genericFailureMessage
}

// compareEmployeeNumbers orders CODE-YEAR-NNN numbers so that 1000 sorts after 999.
func compareEmployeeNumbers(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

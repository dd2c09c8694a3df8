package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Generation
	GeneratePayroll(w http.ResponseWriter, r *http.Request)
	GenerateBulkPayroll(w http.ResponseWriter, r *http.Request)

	// Records
	ListByPeriod(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ApprovePayroll(w http.ResponseWriter, r *http.Request)
	ProcessPayment(w http.ResponseWriter, r *http.Request)

	// Summary
	GetPayrollSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// periodFromQuery leaves unparsable values at zero so validation reports them.
func periodFromQuery(r *http.Request) (month, year int) {
	month, _ = strconv.Atoi(r.URL.Query().Get("period_month"))
	year, _ = strconv.Atoi(r.URL.Query().Get("period_year"))
	return month, year
}

// ========== GENERATION ==========

func (h *payrollHandlerImpl) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GeneratePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", result)
}

func (h *payrollHandlerImpl) GenerateBulkPayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateBulkPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		h.streamBulkPayroll(w, r, req)
		return
	}

	result, err := h.payrollService.GenerateBulkPayroll(r.Context(), req, nil)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, bulkMessage(result), result)
}

type bulkRun struct {
	result payroll.BulkPayrollResult
	err    error
}

// streamBulkPayroll sends one "item" event per employee, then "complete" with the
// full result or "error" if the run could not start.
func (h *payrollHandlerImpl) streamBulkPayroll(w http.ResponseWriter, r *http.Request, req payroll.GenerateBulkPayrollRequest) {
	// Reject bad periods as JSON before the stream commits a 200
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	stream, err := sse.NewStream(w)
	if err != nil {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	ctx := r.Context()
	items := make(chan payroll.BulkPayrollItem, 16)
	done := make(chan bulkRun, 1)

	go func() {
		defer close(items)
		result, err := h.payrollService.GenerateBulkPayroll(ctx, req, func(item payroll.BulkPayrollItem) {
			select {
			case items <- item:
			case <-ctx.Done():
			}
		})
		done <- bulkRun{result: result, err: err}
	}()

	keepalive := time.NewTicker(sse.KeepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case item, ok := <-items:
			if !ok {
				h.finishStream(ctx, stream, <-done)
				return
			}
			if err := stream.Send(sse.Event{Event: "item", Data: item}); err != nil {
				slog.Warn("Bulk payroll stream write failed", "error", err)
			}
		case now := <-keepalive.C:
			_ = stream.Ping(now)
		case <-ctx.Done():
			// The worker pool sees the same cancellation and drains on its own
			return
		}
	}
}

func (h *payrollHandlerImpl) finishStream(ctx context.Context, stream *sse.Stream, run bulkRun) {
	if ctx.Err() != nil {
		return
	}
	if run.err != nil {
		appErr, ok := apperror.As(run.err)
		if !ok || appErr.Kind == apperror.KindInternal {
			slog.Error("Bulk payroll run failed", "error", run.err)
			appErr = apperror.New(apperror.KindInternal, "An unexpected error occurred")
		}
		_ = stream.Send(sse.Event{Event: "error", Data: response.ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}
	_ = stream.Send(sse.Event{Event: "complete", Data: run.result})
}

func bulkMessage(result payroll.BulkPayrollResult) string {
	if result.FailedCount > 0 {
		return "Bulk payroll completed with failures"
	}
	return "Bulk payroll completed"
}

// ========== RECORDS ==========

func (h *payrollHandlerImpl) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	month, year := periodFromQuery(r)

	result, err := h.payrollService.ListByPeriod(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	month, year := periodFromQuery(r)

	result, err := h.payrollService.GetPayslip(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ApprovePayroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	result, err := h.payrollService.ApprovePayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll approved", result)
}

func (h *payrollHandlerImpl) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req payroll.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.ProcessPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll marked as paid", result)
}

// ========== SUMMARY ==========

func (h *payrollHandlerImpl) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	month, year := periodFromQuery(r)

	result, err := h.payrollService.GetPayrollSummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestCompanyID = "0195a3b2-7c4d-7e8f-9a0b-1c2d3e4f5a6b"
	handlerTestUserID    = "0195a3b2-7c4d-7e8f-9a0b-1c2d3e4f5a6c"
	handlerTestEmployee  = "0195a3b2-7c4d-7e8f-9a0b-1c2d3e4f5a6d"
)

// ========== FAKES ==========

type fakePayrollService struct {
	generate func(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error)
	bulk     func(ctx context.Context, req payroll.GenerateBulkPayrollRequest, onItem payroll.ProgressFunc) (payroll.BulkPayrollResult, error)
	list     func(ctx context.Context, month, year int) ([]payroll.PayrollRecordResponse, error)
	payslip  func(ctx context.Context, employeeID string, month, year int) (payroll.PayslipResponse, error)
	approve  func(ctx context.Context, id string) (payroll.PayrollRecordResponse, error)
	pay      func(ctx context.Context, req payroll.ProcessPaymentRequest) (payroll.PayrollRecordResponse, error)
	summary  func(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error)
}

func (f *fakePayrollService) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
	return f.generate(ctx, req)
}

func (f *fakePayrollService) GenerateBulkPayroll(ctx context.Context, req payroll.GenerateBulkPayrollRequest, onItem payroll.ProgressFunc) (payroll.BulkPayrollResult, error) {
	return f.bulk(ctx, req, onItem)
}

func (f *fakePayrollService) ListByPeriod(ctx context.Context, month, year int) ([]payroll.PayrollRecordResponse, error) {
	return f.list(ctx, month, year)
}

func (f *fakePayrollService) GetPayslip(ctx context.Context, employeeID string, month, year int) (payroll.PayslipResponse, error) {
	return f.payslip(ctx, employeeID, month, year)
}

func (f *fakePayrollService) ApprovePayroll(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	return f.approve(ctx, id)
}

func (f *fakePayrollService) ProcessPayment(ctx context.Context, req payroll.ProcessPaymentRequest) (payroll.PayrollRecordResponse, error) {
	return f.pay(ctx, req)
}

func (f *fakePayrollService) GetPayrollSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	return f.summary(ctx, month, year)
}

// The salary and employee services are not exercised here beyond routing.
type fakeSalaryService struct {
	salary.SalaryStructureService
	getEmployeeSalary func(ctx context.Context, employeeID string) (salary.EmployeeSalaryResponse, error)
}

func (f *fakeSalaryService) GetEmployeeSalary(ctx context.Context, employeeID string) (salary.EmployeeSalaryResponse, error) {
	return f.getEmployeeSalary(ctx, employeeID)
}

type fakeEmployeeService struct {
	employee.EmployeeService
	onboard func(ctx context.Context, req employee.OnboardEmployeeRequest) (employee.OnboardingResponse, error)
}

func (f *fakeEmployeeService) Onboard(ctx context.Context, req employee.OnboardEmployeeRequest) (employee.OnboardingResponse, error) {
	return f.onboard(ctx, req)
}

// ========== HARNESS ==========

type routerHarness struct {
	t        *testing.T
	jwt      jwt.Service
	payroll  *fakePayrollService
	salary   *fakeSalaryService
	employee *fakeEmployeeService
	handler  http.Handler
}

func newRouterHarness(t *testing.T, limiter *middleware.CompanyRateLimiter) *routerHarness {
	t.Helper()
	h := &routerHarness{
		t:        t,
		jwt:      jwt.NewJWTService(handlerTestSecret),
		payroll:  &fakePayrollService{},
		salary:   &fakeSalaryService{},
		employee: &fakeEmployeeService{},
	}
	h.handler = NewRouter(
		h.jwt,
		NewPayrollHandler(h.payroll),
		NewSalaryStructureHandler(h.salary),
		NewEmployeeHandler(h.employee, h.salary),
		RouterOptions{BulkLimiter: limiter},
	)
	return h
}

func (h *routerHarness) token(role user.Role) string {
	token, _, err := h.jwt.GenerateAccessToken(jwt.AccessClaims{
		UserID:    handlerTestUserID,
		CompanyID: handlerTestCompanyID,
		Role:      role,
	}, time.Hour)
	require.NoError(h.t, err)
	return token
}

func (h *routerHarness) do(method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		TotalItems int `json:"total_items"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func sampleRecord() payroll.PayrollRecordResponse {
	return payroll.PayrollRecordResponse{
		ID:          "0195a3b2-7c4d-7e8f-9a0b-1c2d3e4f5a70",
		EmployeeID:  handlerTestEmployee,
		PeriodMonth: 6,
		PeriodYear:  2025,
		GrossPay:    decimal.RequireFromString("50000.00"),
		NetPay:      decimal.RequireFromString("45715.00"),
		Status:      string(payroll.PayrollStatusDraft),
	}
}

// ========== TESTS ==========

func TestRouter_Heartbeat(t *testing.T) {
	h := newRouterHarness(t, nil)

	rec := h.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RejectsMissingAndForeignTokens(t *testing.T) {
	h := newRouterHarness(t, nil)

	rec := h.do(http.MethodGet, "/api/v1/payroll?period_month=6&period_year=2025", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := jwt.NewJWTService("another-secret")
	token, _, err := other.GenerateAccessToken(jwt.AccessClaims{CompanyID: handlerTestCompanyID, Role: user.RoleOwner}, time.Hour)
	require.NoError(t, err)

	rec = h.do(http.MethodGet, "/api/v1/payroll?period_month=6&period_year=2025", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RequiresCompanyClaim(t *testing.T) {
	h := newRouterHarness(t, nil)

	token, _, err := h.jwt.GenerateAccessToken(jwt.AccessClaims{UserID: handlerTestUserID, Role: user.RoleManager}, time.Hour)
	require.NoError(t, err)

	rec := h.do(http.MethodGet, "/api/v1/payroll/summary?period_month=6&period_year=2025", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeEnvelope(t, rec).Error.Code)
}

func TestGeneratePayroll(t *testing.T) {
	t.Run("employee role is forbidden", func(t *testing.T) {
		h := newRouterHarness(t, nil)

		rec := h.do(http.MethodPost, "/api/v1/payroll/generate", h.token(user.RoleEmployee), map[string]any{
			"employee_id": handlerTestEmployee, "period_month": 6, "period_year": 2025,
		})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, rec).Error.Code)
	})

	t.Run("manager generates a record", func(t *testing.T) {
		h := newRouterHarness(t, nil)
		var got payroll.GeneratePayrollRequest
		h.payroll.generate = func(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
			got = req
			return sampleRecord(), nil
		}

		rec := h.do(http.MethodPost, "/api/v1/payroll/generate", h.token(user.RoleManager), map[string]any{
			"employee_id": handlerTestEmployee, "period_month": 6, "period_year": 2025,
		})

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, payroll.GeneratePayrollRequest{EmployeeID: handlerTestEmployee, PeriodMonth: 6, PeriodYear: 2025}, got)

		var record payroll.PayrollRecordResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &record))
		assert.True(t, record.NetPay.Equal(decimal.RequireFromString("45715")))
	})

	t.Run("validation errors are 422 with field details", func(t *testing.T) {
		h := newRouterHarness(t, nil)
		h.payroll.generate = func(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
			return payroll.PayrollRecordResponse{}, req.Validate()
		}

		rec := h.do(http.MethodPost, "/api/v1/payroll/generate", h.token(user.RoleOwner), map[string]any{
			"employee_id": handlerTestEmployee, "period_month": 13, "period_year": 2025,
		})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Contains(t, env.Error.Details, "period_month")
	})

	t.Run("locked record maps to conflict", func(t *testing.T) {
		h := newRouterHarness(t, nil)
		h.payroll.generate = func(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
			return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordLocked
		}

		rec := h.do(http.MethodPost, "/api/v1/payroll/generate", h.token(user.RoleOwner), map[string]any{
			"employee_id": handlerTestEmployee, "period_month": 6, "period_year": 2025,
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, payroll.ErrPayrollRecordLocked.Message, decodeEnvelope(t, rec).Error.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := newRouterHarness(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/generate", strings.NewReader("{"))
		req.Header.Set("Authorization", "Bearer "+h.token(user.RoleOwner))
		rec := httptest.NewRecorder()
		h.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGenerateBulkPayroll_JSON(t *testing.T) {
	h := newRouterHarness(t, nil)
	h.payroll.bulk = func(ctx context.Context, req payroll.GenerateBulkPayrollRequest, onItem payroll.ProgressFunc) (payroll.BulkPayrollResult, error) {
		assert.Nil(t, onItem)
		return payroll.BulkPayrollResult{
			PeriodMonth: 6, PeriodYear: 2025, Total: 2, SuccessCount: 1, FailedCount: 1,
			Items: []payroll.BulkPayrollItem{
				{EmployeeNumber: "ACME-2025-001", Outcome: payroll.BulkOutcomeFailed, Message: "employee has no active salary structure"},
				{EmployeeNumber: "ACME-2025-002", Outcome: payroll.BulkOutcomeSuccess},
			},
		}, nil
	}

	rec := h.do(http.MethodPost, "/api/v1/payroll/generate/bulk", h.token(user.RoleManager), map[string]any{
		"period_month": 6, "period_year": 2025,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Bulk payroll completed with failures", env.Message)

	var result payroll.BulkPayrollResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.FailedCount)
	assert.Len(t, result.Items, 2)
}

func TestGenerateBulkPayroll_Stream(t *testing.T) {
	h := newRouterHarness(t, nil)
	h.payroll.bulk = func(ctx context.Context, req payroll.GenerateBulkPayrollRequest, onItem payroll.ProgressFunc) (payroll.BulkPayrollResult, error) {
		assert.NotNil(t, onItem)
		items := []payroll.BulkPayrollItem{
			{EmployeeNumber: "ACME-2025-001", Outcome: payroll.BulkOutcomeSuccess},
			{EmployeeNumber: "ACME-2025-002", Outcome: payroll.BulkOutcomeSuccess},
		}
		for _, item := range items {
			onItem(item)
		}
		return payroll.BulkPayrollResult{PeriodMonth: 6, PeriodYear: 2025, Total: 2, SuccessCount: 2, Items: items}, nil
	}

	rec := h.do(http.MethodPost, "/api/v1/payroll/generate/bulk", h.token(user.RoleManager), map[string]any{
		"period_month": 6, "period_year": 2025,
	}, "Accept", "text/event-stream")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event: item\n"))
	assert.Contains(t, body, "event: complete\n")
	assert.Less(t, strings.Index(body, "ACME-2025-001"), strings.Index(body, "event: complete"))
}

func TestGenerateBulkPayroll_StreamRejectsBadPeriodAsJSON(t *testing.T) {
	h := newRouterHarness(t, nil)

	rec := h.do(http.MethodPost, "/api/v1/payroll/generate/bulk", h.token(user.RoleManager), map[string]any{
		"period_month": 0, "period_year": 2025,
	}, "Accept", "text/event-stream")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestGenerateBulkPayroll_RateLimitedPerCompany(t *testing.T) {
	h := newRouterHarness(t, middleware.NewCompanyRateLimiter(0.001, 1))
	h.payroll.bulk = func(ctx context.Context, req payroll.GenerateBulkPayrollRequest, onItem payroll.ProgressFunc) (payroll.BulkPayrollResult, error) {
		return payroll.BulkPayrollResult{PeriodMonth: 6, PeriodYear: 2025}, nil
	}
	body := map[string]any{"period_month": 6, "period_year": 2025}

	first := h.do(http.MethodPost, "/api/v1/payroll/generate/bulk", h.token(user.RoleOwner), body)
	second := h.do(http.MethodPost, "/api/v1/payroll/generate/bulk", h.token(user.RoleOwner), body)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// Single generation is not throttled
	h.payroll.generate = func(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
		return sampleRecord(), nil
	}
	rec := h.do(http.MethodPost, "/api/v1/payroll/generate", h.token(user.RoleOwner), map[string]any{
		"employee_id": handlerTestEmployee, "period_month": 6, "period_year": 2025,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPayrollReads(t *testing.T) {
	h := newRouterHarness(t, nil)
	h.payroll.list = func(ctx context.Context, month, year int) ([]payroll.PayrollRecordResponse, error) {
		assert.Equal(t, 6, month)
		assert.Equal(t, 2025, year)
		return []payroll.PayrollRecordResponse{sampleRecord()}, nil
	}
	h.payroll.payslip = func(ctx context.Context, employeeID string, month, year int) (payroll.PayslipResponse, error) {
		if employeeID != handlerTestEmployee {
			return payroll.PayslipResponse{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayslipResponse{EmployeeID: employeeID, PeriodMonth: month, PeriodYear: year}, nil
	}
	h.payroll.summary = func(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
		return payroll.PayrollSummaryResponse{PeriodMonth: month, PeriodYear: year, TotalEmployees: 1}, nil
	}
	token := h.token(user.RoleEmployee)

	rec := h.do(http.MethodGet, "/api/v1/payroll?period_month=6&period_year=2025", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeEnvelope(t, rec).Meta.TotalItems)

	rec = h.do(http.MethodGet, "/api/v1/payroll/payslip/"+handlerTestEmployee+"?period_month=6&period_year=2025", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/payroll/payslip/0195a3b2-0000-7e8f-9a0b-1c2d3e4f5a6d?period_month=6&period_year=2025", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, rec).Error.Code)

	rec = h.do(http.MethodGet, "/api/v1/payroll/summary?period_month=6&period_year=2025", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary payroll.PayrollSummaryResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &summary))
	assert.Equal(t, 1, summary.TotalEmployees)
}

func TestPayrollTransitions(t *testing.T) {
	h := newRouterHarness(t, nil)
	recordID := sampleRecord().ID
	h.payroll.approve = func(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
		return payroll.PayrollRecordResponse{}, payroll.ErrInvalidStatusTransition
	}
	h.payroll.pay = func(ctx context.Context, req payroll.ProcessPaymentRequest) (payroll.PayrollRecordResponse, error) {
		assert.Equal(t, recordID, req.ID)
		assert.Equal(t, "bank_transfer", req.PaymentMethod)
		record := sampleRecord()
		record.Status = string(payroll.PayrollStatusPaid)
		return record, nil
	}
	token := h.token(user.RoleManager)

	rec := h.do(http.MethodPost, "/api/v1/payroll/"+recordID+"/approve", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_STATE", decodeEnvelope(t, rec).Error.Code)

	rec = h.do(http.MethodPost, "/api/v1/payroll/"+recordID+"/pay", token, map[string]string{"payment_method": "bank_transfer"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEmployeeRoutes(t *testing.T) {
	h := newRouterHarness(t, nil)
	h.employee.onboard = func(ctx context.Context, req employee.OnboardEmployeeRequest) (employee.OnboardingResponse, error) {
		return employee.OnboardingResponse{Employee: employee.EmployeeResponse{EmployeeNumber: "ACME-2025-001"}, ChecklistItems: 9}, nil
	}
	h.salary.getEmployeeSalary = func(ctx context.Context, employeeID string) (salary.EmployeeSalaryResponse, error) {
		return salary.EmployeeSalaryResponse{}, salary.ErrNoActiveSalaryStructure
	}

	rec := h.do(http.MethodPost, "/api/v1/employees/onboard", h.token(user.RoleEmployee), map[string]string{"full_name": "Jane"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(http.MethodPost, "/api/v1/employees/onboard", h.token(user.RoleOwner), map[string]string{"full_name": "Jane"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/employees/"+handlerTestEmployee+"/salary-structure", h.token(user.RoleEmployee), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleError_HidesInternalErrors(t *testing.T) {
	h := newRouterHarness(t, nil)
	h.payroll.summary = func(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
		return payroll.PayrollSummaryResponse{}, assert.AnError
	}

	rec := h.do(http.MethodGet, "/api/v1/payroll/summary?period_month=6&period_year=2025", h.token(user.RoleOwner), nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "An unexpected error occurred", env.Error.Message)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

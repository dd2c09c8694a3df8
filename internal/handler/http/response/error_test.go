package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	return *body.Error
}

func TestHandleError_AppErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", apperror.New(apperror.KindUnauthorized, "invalid token"), http.StatusUnauthorized, apperror.CodeUnauthorized},
		{"forbidden", apperror.New(apperror.KindForbidden, "insufficient role"), http.StatusForbidden, apperror.CodeForbidden},
		{"not found", apperror.New(apperror.KindNotFound, "employee not found"), http.StatusNotFound, apperror.CodeNotFound},
		{"conflict", apperror.New(apperror.KindConflict, "duplicate national id"), http.StatusConflict, apperror.CodeConflict},
		{"custom code is kept", apperror.NewWithCode(apperror.KindInvalidState, "PAYROLL_RECORD_LOCKED", "record is locked"), http.StatusConflict, "PAYROLL_RECORD_LOCKED"},
		{"wrapped", fmt.Errorf("approve: %w", apperror.New(apperror.KindNotFound, "payroll record not found")), http.StatusNotFound, apperror.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			detail := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, detail.Code)
		})
	}
}

func TestHandleError_ValidationErrors(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add("period_month", "must be between 1 and 12")

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", detail.Code)
	assert.Equal(t, "must be between 1 and 12", detail.Details["period_month"])
}

func TestHandleError_UnknownErrorIsHidden(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, apperror.CodeInternalError, detail.Code)
	assert.Equal(t, "An unexpected error occurred", detail.Message)
}

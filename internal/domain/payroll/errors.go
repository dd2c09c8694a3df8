package payroll

import "github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"

var (
	ErrPayrollRecordNotFound   = apperror.New(apperror.KindNotFound, "payroll record not found")
	ErrPayrollRecordLocked     = apperror.New(apperror.KindConflict, "payroll record is already approved or paid and cannot be regenerated")
	ErrInvalidStatusTransition = apperror.New(apperror.KindInvalidState, "payroll record status does not allow this action")
	ErrInvalidGrossPay         = apperror.New(apperror.KindValidation, "gross pay must not be negative")
	ErrInvalidPaymentMethod    = apperror.New(apperror.KindValidation, "payment method must be one of bank_transfer, mobile_money, cheque, cash")
	ErrEmployeeNotActive       = apperror.New(apperror.KindInvalidState, "employee is not active")
	ErrPayrollRunCancelled     = apperror.New(apperror.KindInternal, "payroll run cancelled")
)

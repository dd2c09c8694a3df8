package payroll

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATION DTOs ==========

type GeneratePayrollRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required,uuid"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}
	errs = append(errs, validator.ValidatePeriod(r.PeriodMonth, r.PeriodYear)...)

	return errs.Err()
}

type GenerateBulkPayrollRequest struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`
}

func (r *GenerateBulkPayrollRequest) Validate() error {
	return validator.ValidatePeriod(r.PeriodMonth, r.PeriodYear).Err()
}

type ProcessPaymentRequest struct {
	ID            string `json:"-"`
	PaymentMethod string `json:"payment_method"`
}

func (r *ProcessPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if validator.IsEmpty(r.PaymentMethod) {
		errs.Add("payment_method", "is required")
	} else if !PaymentMethod(r.PaymentMethod).IsValid() {
		errs.Add("payment_method", ErrInvalidPaymentMethod.Message)
	}

	return errs.Err()
}

// ========== RESPONSE DTOs ==========

type PayrollRecordResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name,omitempty"`
	EmployeeNumber     string          `json:"employee_number,omitempty"`
	PeriodMonth        int             `json:"period_month"`
	PeriodYear         int             `json:"period_year"`
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	MedicalAllowance   decimal.Decimal `json:"medical_allowance"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	OvertimePay        decimal.Decimal `json:"overtime_pay"`
	AbsentDays         int             `json:"absent_days"`
	AbsenceDeduction   decimal.Decimal `json:"absence_deduction"`
	GrossPay           decimal.Decimal `json:"gross_pay"`
	PAYE               decimal.Decimal `json:"paye"`
	NSSFEmployee       decimal.Decimal `json:"nssf_employee"`
	SHIF               decimal.Decimal `json:"shif"`
	HousingLevy        decimal.Decimal `json:"housing_levy"`
	PersonalRelief     decimal.Decimal `json:"personal_relief"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	NetPay             decimal.Decimal `json:"net_pay"`
	Status             string          `json:"status"`
	PaymentMethod      *string         `json:"payment_method,omitempty"`
	ApprovedAt         *string         `json:"approved_at,omitempty"`
	PaidAt             *string         `json:"paid_at,omitempty"`
	UpdatedAt          string          `json:"updated_at"`
}

type PayslipEarnings struct {
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	MedicalAllowance   decimal.Decimal `json:"medical_allowance"`
	OvertimePay        decimal.Decimal `json:"overtime_pay"`
	AbsenceDeduction   decimal.Decimal `json:"absence_deduction"`
	GrossPay           decimal.Decimal `json:"gross_pay"`
}

type PayslipDeductions struct {
	PAYE            decimal.Decimal `json:"paye"`
	NSSFEmployee    decimal.Decimal `json:"nssf_employee"`
	SHIF            decimal.Decimal `json:"shif"`
	HousingLevy     decimal.Decimal `json:"housing_levy"`
	PersonalRelief  decimal.Decimal `json:"personal_relief"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
}

type PayslipResponse struct {
	RecordID       string            `json:"record_id"`
	EmployeeID     string            `json:"employee_id"`
	EmployeeName   string            `json:"employee_name"`
	EmployeeNumber string            `json:"employee_number"`
	PeriodMonth    int               `json:"period_month"`
	PeriodYear     int               `json:"period_year"`
	OvertimeHours  decimal.Decimal   `json:"overtime_hours"`
	AbsentDays     int               `json:"absent_days"`
	Earnings       PayslipEarnings   `json:"earnings"`
	Deductions     PayslipDeductions `json:"deductions"`
	NetPay         decimal.Decimal   `json:"net_pay"`
	Status         string            `json:"status"`
}

type BulkOutcome string

const (
	BulkOutcomeSuccess BulkOutcome = "success"
	BulkOutcomeFailed  BulkOutcome = "failed"
)

// BulkPayrollItem is one employee's outcome in a bulk run.
type BulkPayrollItem struct {
	EmployeeID     string                 `json:"employee_id"`
	EmployeeNumber string                 `json:"employee_number"`
	EmployeeName   string                 `json:"employee_name"`
	Outcome        BulkOutcome            `json:"outcome"`
	Message        string                 `json:"message,omitempty"`
	Record         *PayrollRecordResponse `json:"record,omitempty"`
}

type BulkPayrollResult struct {
	PeriodMonth  int               `json:"period_month"`
	PeriodYear   int               `json:"period_year"`
	Total        int               `json:"total"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	Items        []BulkPayrollItem `json:"items"`
}

type PayrollSummaryResponse struct {
	PeriodMonth             int             `json:"period_month"`
	PeriodYear              int             `json:"period_year"`
	TotalEmployees          int             `json:"total_employees"`
	TotalBasicSalary        decimal.Decimal `json:"total_basic_salary"`
	TotalHousingAllowance   decimal.Decimal `json:"total_housing_allowance"`
	TotalTransportAllowance decimal.Decimal `json:"total_transport_allowance"`
	TotalMedicalAllowance   decimal.Decimal `json:"total_medical_allowance"`
	TotalOvertimeHours      decimal.Decimal `json:"total_overtime_hours"`
	TotalOvertimePay        decimal.Decimal `json:"total_overtime_pay"`
	TotalAbsentDays         int             `json:"total_absent_days"`
	TotalAbsenceDeduction   decimal.Decimal `json:"total_absence_deduction"`
	TotalGrossPay           decimal.Decimal `json:"total_gross_pay"`
	TotalPAYE               decimal.Decimal `json:"total_paye"`
	TotalNSSF               decimal.Decimal `json:"total_nssf"`
	TotalSHIF               decimal.Decimal `json:"total_shif"`
	TotalHousingLevy        decimal.Decimal `json:"total_housing_levy"`
	TotalPersonalRelief     decimal.Decimal `json:"total_personal_relief"`
	TotalDeductions         decimal.Decimal `json:"total_deductions"`
	TotalNetPay             decimal.Decimal `json:"total_net_pay"`
	DraftCount              int             `json:"draft_count"`
	ApprovedCount           int             `json:"approved_count"`
	PaidCount               int             `json:"paid_count"`
}

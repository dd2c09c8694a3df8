package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft    PayrollStatus = "draft"
	PayrollStatusApproved PayrollStatus = "approved"
	PayrollStatusPaid     PayrollStatus = "paid"
)

// CanTransitionTo reports whether the one-way lifecycle draft -> approved -> paid allows next.
func (s PayrollStatus) CanTransitionTo(next PayrollStatus) bool {
	switch s {
	case PayrollStatusDraft:
		return next == PayrollStatusApproved
	case PayrollStatusApproved:
		return next == PayrollStatusPaid
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodCash         PaymentMethod = "cash"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodMobileMoney, PaymentMethodCheque, PaymentMethodCash:
		return true
	}
	return false
}

// PayrollRecord - one employee's pay for one period, keyed by (EmployeeID, PeriodMonth, PeriodYear)
type PayrollRecord struct {
	ID                 string
	CompanyID          string
	EmployeeID         string
	PeriodMonth        int
	PeriodYear         int
	BasicSalary        decimal.Decimal
	HousingAllowance   decimal.Decimal
	TransportAllowance decimal.Decimal
	MedicalAllowance   decimal.Decimal
	OvertimeHours      decimal.Decimal
	OvertimePay        decimal.Decimal
	AbsentDays         int
	AbsenceDeduction   decimal.Decimal
	GrossPay           decimal.Decimal
	PAYE               decimal.Decimal
	NSSFEmployee       decimal.Decimal
	SHIF               decimal.Decimal
	HousingLevy        decimal.Decimal
	PersonalRelief     decimal.Decimal
	TotalDeductions    decimal.Decimal
	NetPay             decimal.Decimal
	Status             PayrollStatus
	PaymentMethod      *PaymentMethod
	ApprovedBy         *string
	ApprovedAt         *time.Time
	PaidBy             *string
	PaidAt             *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName   *string
	EmployeeNumber *string
}

// EarningsInput is everything the earnings step needs for one employee and period.
type EarningsInput struct {
	BasicSalary        decimal.Decimal
	HousingAllowance   decimal.Decimal
	TransportAllowance decimal.Decimal
	MedicalAllowance   decimal.Decimal
	OvertimeHours      decimal.Decimal
	AbsentDays         int
}

type EarningsBreakdown struct {
	BasicSalary        decimal.Decimal
	HousingAllowance   decimal.Decimal
	TransportAllowance decimal.Decimal
	MedicalAllowance   decimal.Decimal
	OvertimeHours      decimal.Decimal
	OvertimePay        decimal.Decimal
	AbsentDays         int
	AbsenceDeduction   decimal.Decimal
	GrossPay           decimal.Decimal
}

type DeductionBreakdown struct {
	GrossPay        decimal.Decimal
	PAYE            decimal.Decimal
	NSSFEmployee    decimal.Decimal
	SHIF            decimal.Decimal
	HousingLevy     decimal.Decimal
	PersonalRelief  decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
}

// NewPayrollRecord assembles a draft record from the two calculation steps.
func NewPayrollRecord(companyID, employeeID string, month, year int, e EarningsBreakdown, d DeductionBreakdown) PayrollRecord {
	return PayrollRecord{
		CompanyID:          companyID,
		EmployeeID:         employeeID,
		PeriodMonth:        month,
		PeriodYear:         year,
		BasicSalary:        e.BasicSalary,
		HousingAllowance:   e.HousingAllowance,
		TransportAllowance: e.TransportAllowance,
		MedicalAllowance:   e.MedicalAllowance,
		OvertimeHours:      e.OvertimeHours,
		OvertimePay:        e.OvertimePay,
		AbsentDays:         e.AbsentDays,
		AbsenceDeduction:   e.AbsenceDeduction,
		GrossPay:           e.GrossPay,
		PAYE:               d.PAYE,
		NSSFEmployee:       d.NSSFEmployee,
		SHIF:               d.SHIF,
		HousingLevy:        d.HousingLevy,
		PersonalRelief:     d.PersonalRelief,
		TotalDeductions:    d.TotalDeductions,
		NetPay:             d.NetPay,
		Status:             PayrollStatusDraft,
	}
}

const (
	EventRecordGenerated = "payroll.record.generated"
	EventRecordApproved  = "payroll.record.approved"
	EventRecordPaid      = "payroll.record.paid"
)

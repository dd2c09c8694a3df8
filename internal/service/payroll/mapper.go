package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
)

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toRecordResponse prefers the given employee for name and number and falls back
// to the joined columns of the record.
func toRecordResponse(r payroll.PayrollRecord, emp *employee.Employee) payroll.PayrollRecordResponse {
	resp := payroll.PayrollRecordResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		EmployeeName:       derefString(r.EmployeeName),
		EmployeeNumber:     derefString(r.EmployeeNumber),
		PeriodMonth:        r.PeriodMonth,
		PeriodYear:         r.PeriodYear,
		BasicSalary:        r.BasicSalary,
		HousingAllowance:   r.HousingAllowance,
		TransportAllowance: r.TransportAllowance,
		MedicalAllowance:   r.MedicalAllowance,
		OvertimeHours:      r.OvertimeHours,
		OvertimePay:        r.OvertimePay,
		AbsentDays:         r.AbsentDays,
		AbsenceDeduction:   r.AbsenceDeduction,
		GrossPay:           r.GrossPay,
		PAYE:               r.PAYE,
		NSSFEmployee:       r.NSSFEmployee,
		SHIF:               r.SHIF,
		HousingLevy:        r.HousingLevy,
		PersonalRelief:     r.PersonalRelief,
		TotalDeductions:    r.TotalDeductions,
		NetPay:             r.NetPay,
		Status:             string(r.Status),
		ApprovedAt:         formatTime(r.ApprovedAt),
		PaidAt:             formatTime(r.PaidAt),
		UpdatedAt:          r.UpdatedAt.Format(time.RFC3339),
	}
	if emp != nil {
		resp.EmployeeName = emp.FullName
		resp.EmployeeNumber = emp.EmployeeNumber
	}
	if r.PaymentMethod != nil {
		method := string(*r.PaymentMethod)
		resp.PaymentMethod = &method
	}
	return resp
}

func toPayslipResponse(r payroll.PayrollRecord) payroll.PayslipResponse {
	return payroll.PayslipResponse{
		RecordID:       r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   derefString(r.EmployeeName),
		EmployeeNumber: derefString(r.EmployeeNumber),
		PeriodMonth:    r.PeriodMonth,
		PeriodYear:     r.PeriodYear,
		OvertimeHours:  r.OvertimeHours,
		AbsentDays:     r.AbsentDays,
		Earnings: payroll.PayslipEarnings{
			BasicSalary:        r.BasicSalary,
			HousingAllowance:   r.HousingAllowance,
			TransportAllowance: r.TransportAllowance,
			MedicalAllowance:   r.MedicalAllowance,
			OvertimePay:        r.OvertimePay,
			AbsenceDeduction:   r.AbsenceDeduction,
			GrossPay:           r.GrossPay,
		},
		Deductions: payroll.PayslipDeductions{
			PAYE:            r.PAYE,
			NSSFEmployee:    r.NSSFEmployee,
			SHIF:            r.SHIF,
			HousingLevy:     r.HousingLevy,
			PersonalRelief:  r.PersonalRelief,
			TotalDeductions: r.TotalDeductions,
		},
		NetPay: r.NetPay,
		Status: string(r.Status),
	}
}

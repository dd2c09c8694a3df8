package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

type EarningsCalculator struct {
	policy payroll.EarningsPolicy
}

func NewEarningsCalculator(policy payroll.EarningsPolicy) *EarningsCalculator {
	return &EarningsCalculator{policy: policy}
}

// Calculate turns a structure's fixed pay and the period's attendance into gross pay.
// Rates and components stay exact until each returned amount is rounded to cents.
func (c *EarningsCalculator) Calculate(in payroll.EarningsInput) (payroll.EarningsBreakdown, error) {
	if err := validateEarningsInput(in); err != nil {
		return payroll.EarningsBreakdown{}, err
	}

	hourlyRate := in.BasicSalary.Div(c.policy.StandardMonthlyHours)
	overtime := in.OvertimeHours.Mul(hourlyRate).Mul(c.policy.OvertimeMultiplier)

	dailyRate := in.BasicSalary.Div(c.policy.StandardWorkingDays)
	absence := decimal.NewFromInt(int64(in.AbsentDays)).Mul(dailyRate)

	// Gross is rounded once from the exact components.
	gross := in.BasicSalary.
		Add(in.HousingAllowance).
		Add(in.TransportAllowance).
		Add(in.MedicalAllowance).
		Add(overtime).
		Sub(absence).
		Round(moneyPlaces)

	return payroll.EarningsBreakdown{
		BasicSalary:        in.BasicSalary.Round(moneyPlaces),
		HousingAllowance:   in.HousingAllowance.Round(moneyPlaces),
		TransportAllowance: in.TransportAllowance.Round(moneyPlaces),
		MedicalAllowance:   in.MedicalAllowance.Round(moneyPlaces),
		OvertimeHours:      in.OvertimeHours.Round(moneyPlaces),
		OvertimePay:        overtime.Round(moneyPlaces),
		AbsentDays:         in.AbsentDays,
		AbsenceDeduction:   absence.Round(moneyPlaces),
		GrossPay:           gross,
	}, nil
}

func validateEarningsInput(in payroll.EarningsInput) error {
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"basic salary", in.BasicSalary},
		{"housing allowance", in.HousingAllowance},
		{"transport allowance", in.TransportAllowance},
		{"medical allowance", in.MedicalAllowance},
		{"overtime hours", in.OvertimeHours},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return apperror.New(apperror.KindValidation, fmt.Sprintf("%s must not be negative", a.name))
		}
	}
	if in.AbsentDays < 0 {
		return apperror.New(apperror.KindValidation, "absent days must not be negative")
	}
	return nil
}

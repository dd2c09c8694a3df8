package payroll

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type StatutoryCalculator struct {
	policy payroll.StatutoryPolicy
}

func NewStatutoryCalculator(policy payroll.StatutoryPolicy) *StatutoryCalculator {
	return &StatutoryCalculator{policy: policy}
}

// PAYE evaluates the progressive bands on gross pay without rounding.
// Each band with Lower < gross contributes Rate * (min(gross, Upper) - Lower).
func (c *StatutoryCalculator) PAYE(gross decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	for _, band := range c.policy.PAYEBands {
		if !band.Lower.LessThan(gross) {
			continue
		}
		top := gross
		if band.Upper != nil && band.Upper.LessThan(gross) {
			top = *band.Upper
		}
		tax = tax.Add(band.Rate.Mul(top.Sub(band.Lower)))
	}
	return tax
}

// Calculate computes every statutory deduction for gross pay. Total deductions
// are floored at zero so net pay never exceeds gross pay.
func (c *StatutoryCalculator) Calculate(gross decimal.Decimal) (payroll.DeductionBreakdown, error) {
	if gross.IsNegative() {
		return payroll.DeductionBreakdown{}, payroll.ErrInvalidGrossPay
	}

	paye := c.PAYE(gross).Round(moneyPlaces)
	nssf := decimal.Min(gross, c.policy.NSSFUpperLimit).Mul(c.policy.NSSFRate).Round(moneyPlaces)
	shif := gross.Mul(c.policy.SHIFRate).Round(moneyPlaces)
	housingLevy := gross.Mul(c.policy.HousingLevyRate).Round(moneyPlaces)
	relief := c.policy.PersonalRelief.Round(moneyPlaces)

	total := paye.Add(nssf).Add(shif).Add(housingLevy).Sub(relief)
	if total.IsNegative() {
		total = decimal.Zero
	}

	grossRounded := gross.Round(moneyPlaces)

	return payroll.DeductionBreakdown{
		GrossPay:        grossRounded,
		PAYE:            paye,
		NSSFEmployee:    nssf,
		SHIF:            shif,
		HousingLevy:     housingLevy,
		PersonalRelief:  relief,
		TotalDeductions: total,
		NetPay:          grossRounded.Sub(total),
	}, nil
}

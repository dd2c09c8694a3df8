package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBand is one progressive PAYE band. A nil Upper means the band is unbounded.
type TaxBand struct {
	Lower decimal.Decimal
	Upper *decimal.Decimal
	Rate  decimal.Decimal
}

type EarningsPolicy struct {
	StandardMonthlyHours decimal.Decimal
	StandardWorkingDays  decimal.Decimal
	OvertimeMultiplier   decimal.Decimal
}

type StatutoryPolicy struct {
	PAYEBands       []TaxBand
	NSSFRate        decimal.Decimal
	NSSFUpperLimit  decimal.Decimal
	SHIFRate        decimal.Decimal
	HousingLevyRate decimal.Decimal
	PersonalRelief  decimal.Decimal
}

// Policy holds every statutory and earnings constant. Values come from configuration.
type Policy struct {
	Earnings  EarningsPolicy
	Statutory StatutoryPolicy
}

func DefaultPolicy() Policy {
	return Policy{
		Earnings: EarningsPolicy{
			StandardMonthlyHours: decimal.NewFromInt(160),
			StandardWorkingDays:  decimal.NewFromInt(22),
			OvertimeMultiplier:   decimal.RequireFromString("1.5"),
		},
		Statutory: StatutoryPolicy{
			PAYEBands: []TaxBand{
				{Lower: decimal.Zero, Upper: decPtr("24000"), Rate: decimal.RequireFromString("0.10")},
				{Lower: decimal.NewFromInt(24001), Upper: decPtr("32333"), Rate: decimal.RequireFromString("0.25")},
				{Lower: decimal.NewFromInt(32334), Upper: decPtr("500000"), Rate: decimal.RequireFromString("0.30")},
				{Lower: decimal.NewFromInt(500001), Upper: decPtr("800000"), Rate: decimal.RequireFromString("0.325")},
				{Lower: decimal.NewFromInt(800001), Upper: nil, Rate: decimal.RequireFromString("0.35")},
			},
			NSSFRate:        decimal.RequireFromString("0.06"),
			NSSFUpperLimit:  decimal.NewFromInt(36000),
			SHIFRate:        decimal.RequireFromString("0.0275"),
			HousingLevyRate: decimal.RequireFromString("0.015"),
			PersonalRelief:  decimal.NewFromInt(2400),
		},
	}
}

// Validate rejects policies the calculators cannot evaluate.
func (p Policy) Validate() error {
	one := decimal.NewFromInt(1)

	if !p.Earnings.StandardMonthlyHours.IsPositive() {
		return fmt.Errorf("standard_monthly_hours must be positive")
	}
	if !p.Earnings.StandardWorkingDays.IsPositive() {
		return fmt.Errorf("standard_working_days must be positive")
	}
	if p.Earnings.OvertimeMultiplier.IsNegative() {
		return fmt.Errorf("overtime_multiplier must not be negative")
	}

	s := p.Statutory
	if len(s.PAYEBands) == 0 {
		return fmt.Errorf("at least one PAYE band is required")
	}
	for i, b := range s.PAYEBands {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("paye band %d: rate must be between 0 and 1", i)
		}
		if b.Lower.IsNegative() {
			return fmt.Errorf("paye band %d: lower bound must not be negative", i)
		}
		if b.Upper != nil && b.Upper.LessThanOrEqual(b.Lower) {
			return fmt.Errorf("paye band %d: upper bound must exceed lower bound", i)
		}
		if b.Upper == nil && i != len(s.PAYEBands)-1 {
			return fmt.Errorf("paye band %d: only the last band may be unbounded", i)
		}
		if i > 0 {
			prev := s.PAYEBands[i-1]
			if prev.Upper == nil || b.Lower.LessThan(*prev.Upper) {
				return fmt.Errorf("paye band %d: bands must be ascending and non-overlapping", i)
			}
		}
	}

	rates := map[string]decimal.Decimal{
		"nssf_rate":         s.NSSFRate,
		"shif_rate":         s.SHIFRate,
		"housing_levy_rate": s.HousingLevyRate,
	}
	for name, r := range rates {
		if r.IsNegative() || r.GreaterThan(one) {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	if s.NSSFUpperLimit.IsNegative() {
		return fmt.Errorf("nssf_upper_limit must not be negative")
	}
	if s.PersonalRelief.IsNegative() {
		return fmt.Errorf("personal_relief must not be negative")
	}

	return nil
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

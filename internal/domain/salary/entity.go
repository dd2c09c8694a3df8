package salary

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SalaryStructure - a reusable compensation package owned by one company
type SalaryStructure struct {
	ID          string
	CompanyID   string
	Title       string
	BasicSalary decimal.Decimal
	Description *string
	Allowances  []Allowance
	Benefits    []Benefit
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Allowance - Formula is stored for reference only and never evaluated
type Allowance struct {
	ID          string
	StructureID string
	Name        string
	Amount      decimal.Decimal
	Formula     *string
	Taxable     bool
	Position    int
}

type Benefit struct {
	ID          string
	StructureID string
	Name        string
	Amount      decimal.Decimal
	BenefitType string
	Taxable     bool
	Notes       *string
	Position    int
}

// Assignment links an employee to a structure. At most one is active per employee.
type Assignment struct {
	ID            string
	EmployeeID    string
	StructureID   string
	AssignedBy    *string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	IsActive      bool
	AssignedAt    time.Time
	Notes         *string
}

// FixedAllowances is the part of a structure that enters gross pay.
type FixedAllowances struct {
	Housing   decimal.Decimal
	Transport decimal.Decimal
	Medical   decimal.Decimal
}

// FixedAllowances sums allowances by name keyword. Allowances matching none of
// housing, transport or medical are informational and do not enter gross pay.
func (s SalaryStructure) FixedAllowances() FixedAllowances {
	out := FixedAllowances{Housing: decimal.Zero, Transport: decimal.Zero, Medical: decimal.Zero}
	for _, a := range s.Allowances {
		name := strings.ToLower(a.Name)
		switch {
		case strings.Contains(name, "housing"):
			out.Housing = out.Housing.Add(a.Amount)
		case strings.Contains(name, "transport"):
			out.Transport = out.Transport.Add(a.Amount)
		case strings.Contains(name, "medical"):
			out.Medical = out.Medical.Add(a.Amount)
		}
	}
	return out
}

package salary

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
)

func toAllowances(reqs []salary.AllowanceRequest) []salary.Allowance {
	out := make([]salary.Allowance, 0, len(reqs))
	for i, r := range reqs {
		taxable := true
		if r.Taxable != nil {
			taxable = *r.Taxable
		}
		out = append(out, salary.Allowance{
			Name:     r.Name,
			Amount:   r.Amount,
			Formula:  r.Formula,
			Taxable:  taxable,
			Position: i,
		})
	}
	return out
}

func toBenefits(reqs []salary.BenefitRequest) []salary.Benefit {
	out := make([]salary.Benefit, 0, len(reqs))
	for i, r := range reqs {
		out = append(out, salary.Benefit{
			Name:        r.Name,
			Amount:      r.Amount,
			BenefitType: r.BenefitType,
			Taxable:     r.Taxable,
			Notes:       r.Notes,
			Position:    i,
		})
	}
	return out
}

func toStructureResponse(s salary.SalaryStructure) salary.SalaryStructureResponse {
	resp := salary.SalaryStructureResponse{
		ID:          s.ID,
		Title:       s.Title,
		BasicSalary: s.BasicSalary,
		Description: s.Description,
		Allowances:  make([]salary.AllowanceResponse, 0, len(s.Allowances)),
		Benefits:    make([]salary.BenefitResponse, 0, len(s.Benefits)),
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
	for _, a := range s.Allowances {
		resp.Allowances = append(resp.Allowances, salary.AllowanceResponse{
			ID:      a.ID,
			Name:    a.Name,
			Amount:  a.Amount,
			Formula: a.Formula,
			Taxable: a.Taxable,
		})
	}
	for _, b := range s.Benefits {
		resp.Benefits = append(resp.Benefits, salary.BenefitResponse{
			ID:          b.ID,
			Name:        b.Name,
			Amount:      b.Amount,
			BenefitType: b.BenefitType,
			Taxable:     b.Taxable,
			Notes:       b.Notes,
		})
	}
	return resp
}

func toAssignmentResponse(a salary.Assignment) salary.AssignmentResponse {
	resp := salary.AssignmentResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		StructureID:   a.StructureID,
		EffectiveFrom: a.EffectiveFrom.Format(dateLayout),
		IsActive:      a.IsActive,
		AssignedAt:    a.AssignedAt.Format(time.RFC3339),
		Notes:         a.Notes,
	}
	if a.EffectiveTo != nil {
		to := a.EffectiveTo.Format(dateLayout)
		resp.EffectiveTo = &to
	}
	return resp
}

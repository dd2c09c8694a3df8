package salary

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== STRUCTURE DTOs ==========

type AllowanceRequest struct {
	Name    string          `json:"name" validate:"required,max=100"`
	Amount  decimal.Decimal `json:"amount" validate:"gte=0"`
	Formula *string         `json:"formula,omitempty"`
	Taxable *bool           `json:"taxable,omitempty"`
}

type BenefitRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
	BenefitType string          `json:"benefit_type" validate:"required,max=50"`
	Taxable     bool            `json:"taxable"`
	Notes       *string         `json:"notes,omitempty"`
}

type CreateSalaryStructureRequest struct {
	Title       string             `json:"title" validate:"required,max=150"`
	BasicSalary decimal.Decimal    `json:"basic_salary" validate:"gte=0"`
	Description *string            `json:"description,omitempty"`
	Allowances  []AllowanceRequest `json:"allowances" validate:"dive"`
	Benefits    []BenefitRequest   `json:"benefits" validate:"dive"`
}

func (r *CreateSalaryStructureRequest) Validate() error {
	return validator.Struct(r)
}

// UpdateSalaryStructureRequest - a non-nil Allowances or Benefits replaces the whole collection
type UpdateSalaryStructureRequest struct {
	ID          string              `json:"-"`
	Title       *string             `json:"title,omitempty"`
	BasicSalary *decimal.Decimal    `json:"basic_salary,omitempty"`
	Description *string             `json:"description,omitempty"`
	Allowances  *[]AllowanceRequest `json:"allowances,omitempty"`
	Benefits    *[]BenefitRequest   `json:"benefits,omitempty"`
}

func (r *UpdateSalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs.Add("title", "must not be empty")
	}
	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs.Add("basic_salary", "must be non-negative")
	}
	if r.Allowances != nil {
		for _, a := range *r.Allowances {
			if err := validator.Struct(a); err != nil {
				errs.Add("allowances", err.Error())
				break
			}
		}
	}
	if r.Benefits != nil {
		for _, b := range *r.Benefits {
			if err := validator.Struct(b); err != nil {
				errs.Add("benefits", err.Error())
				break
			}
		}
	}

	return errs.Err()
}

type AllowanceResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Formula *string         `json:"formula,omitempty"`
	Taxable bool            `json:"taxable"`
}

type BenefitResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	BenefitType string          `json:"benefit_type"`
	Taxable     bool            `json:"taxable"`
	Notes       *string         `json:"notes,omitempty"`
}

type SalaryStructureResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	BasicSalary decimal.Decimal     `json:"basic_salary"`
	Description *string             `json:"description,omitempty"`
	Allowances  []AllowanceResponse `json:"allowances"`
	Benefits    []BenefitResponse   `json:"benefits"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

// ========== ASSIGNMENT DTOs ==========

type AssignSalaryStructureRequest struct {
	EmployeeID    string  `json:"-" validate:"required,uuid"`
	StructureID   string  `json:"structure_id" validate:"required,uuid"`
	EffectiveFrom string  `json:"effective_from" validate:"required,datetime=2006-01-02"`
	Notes         *string `json:"notes,omitempty"`
}

func (r *AssignSalaryStructureRequest) Validate() error {
	return validator.Struct(r)
}

type AssignmentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	StructureID   string  `json:"structure_id"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
	IsActive      bool    `json:"is_active"`
	AssignedAt    string  `json:"assigned_at"`
	Notes         *string `json:"notes,omitempty"`
}

type EmployeeSalaryResponse struct {
	Assignment AssignmentResponse      `json:"assignment"`
	Structure  SalaryStructureResponse `json:"structure"`
}

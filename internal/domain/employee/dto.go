package employee

import (
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type OnboardEmployeeRequest struct {
	FullName       string  `json:"full_name" validate:"required,max=255"`
	NationalID     string  `json:"national_id" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	Department     *string `json:"department,omitempty"`
	JobTitle       *string `json:"job_title,omitempty"`
	HireDate       string  `json:"hire_date" validate:"required,datetime=2006-01-02"`
	EmploymentType string  `json:"employment_type" validate:"required,oneof=permanent probation contract internship"`
	BankName       *string `json:"bank_name,omitempty"`
	BankAccount    *string `json:"bank_account,omitempty"`

	// CreateLogin provisions a user account with the employee role.
	CreateLogin     bool   `json:"create_login"`
	InitialPassword string `json:"initial_password,omitempty"`
}

func (r *OnboardEmployeeRequest) Validate() error {
	r.EmploymentType = strings.ToLower(strings.TrimSpace(r.EmploymentType))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if r.NationalID != "" && !validator.IsValidNationalID(r.NationalID) {
		errs.Add("national_id", "must be 7 or 8 digits")
	}
	if r.PhoneNumber != nil && *r.PhoneNumber != "" && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs.Add("phone_number", "must be a valid mobile number")
	}
	if r.CreateLogin && len(r.InitialPassword) < 8 {
		errs.Add("initial_password", "must be at least 8 characters when create_login is set")
	}

	return errs.Err()
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	EmployeeNumber   string  `json:"employee_number"`
	FullName         string  `json:"full_name"`
	NationalID       string  `json:"national_id"`
	Email            string  `json:"email"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	Department       *string `json:"department,omitempty"`
	JobTitle         *string `json:"job_title,omitempty"`
	HireDate         string  `json:"hire_date"`
	EmploymentType   string  `json:"employment_type"`
	EmploymentStatus string  `json:"employment_status"`
	UserID           *string `json:"user_id,omitempty"`
}

type OnboardingResponse struct {
	Employee            EmployeeResponse `json:"employee"`
	LoginCreated        bool             `json:"login_created"`
	LeaveBalancesSeeded int              `json:"leave_balances_seeded"`
	ChecklistItems      int              `json:"checklist_items"`
}

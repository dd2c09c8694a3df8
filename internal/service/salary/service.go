package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

const dateLayout = "2006-01-02"

type SalaryStructureServiceImpl struct {
	transactor   database.Transactor
	salaryRepo   salary.SalaryStructureRepository
	employeeRepo employee.EmployeeRepository
	auditRepo    audit.AuditRepository
}

func NewSalaryStructureService(
	transactor database.Transactor,
	salaryRepo salary.SalaryStructureRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
) *SalaryStructureServiceImpl {
	return &SalaryStructureServiceImpl{
		transactor:   transactor,
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
	}
}

var (
	_ salary.SalaryStructureService = (*SalaryStructureServiceImpl)(nil)
	_ salary.Resolver               = (*SalaryStructureServiceImpl)(nil)
)

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", user.ErrInvalidToken, err)
	}
	if token == nil {
		return "", "", user.ErrInvalidToken
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", user.ErrCompanyIDRequired
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ========== STRUCTURES ==========

func (s *SalaryStructureServiceImpl) Create(ctx context.Context, req salary.CreateSalaryStructureRequest) (salary.SalaryStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	var created salary.SalaryStructure
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.salaryRepo.Create(txCtx, salary.SalaryStructure{
			CompanyID:   companyID,
			Title:       req.Title,
			BasicSalary: req.BasicSalary,
			Description: req.Description,
		})
		if err != nil {
			return err
		}
		if err := s.salaryRepo.ReplaceAllowances(txCtx, created.ID, toAllowances(req.Allowances)); err != nil {
			return err
		}
		return s.salaryRepo.ReplaceBenefits(txCtx, created.ID, toBenefits(req.Benefits))
	})
	if err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	return s.GetByID(ctx, created.ID)
}

func (s *SalaryStructureServiceImpl) GetByID(ctx context.Context, id string) (salary.SalaryStructureResponse, error) {
	if !validator.IsValidUUID(id) {
		return salary.SalaryStructureResponse{}, salary.ErrSalaryStructureNotFound
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	structure, err := s.salaryRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	return toStructureResponse(structure), nil
}

func (s *SalaryStructureServiceImpl) List(ctx context.Context) ([]salary.SalaryStructureResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	structures, err := s.salaryRepo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]salary.SalaryStructureResponse, 0, len(structures))
	for _, st := range structures {
		responses = append(responses, toStructureResponse(st))
	}
	return responses, nil
}

// Update patches the header fields that are set and replaces a collection
// wholesale when it is present in the request.
func (s *SalaryStructureServiceImpl) Update(ctx context.Context, req salary.UpdateSalaryStructureRequest) (salary.SalaryStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.salaryRepo.GetByID(txCtx, req.ID, companyID)
		if err != nil {
			return err
		}

		if req.Title != nil {
			current.Title = *req.Title
		}
		if req.BasicSalary != nil {
			current.BasicSalary = *req.BasicSalary
		}
		if req.Description != nil {
			current.Description = req.Description
		}
		if _, err := s.salaryRepo.UpdateHeader(txCtx, current); err != nil {
			return err
		}

		if req.Allowances != nil {
			if err := s.salaryRepo.ReplaceAllowances(txCtx, current.ID, toAllowances(*req.Allowances)); err != nil {
				return err
			}
		}
		if req.Benefits != nil {
			if err := s.salaryRepo.ReplaceBenefits(txCtx, current.ID, toBenefits(*req.Benefits)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	return s.GetByID(ctx, req.ID)
}

// ========== ASSIGNMENTS ==========

// AssignToEmployee deactivates the employee's current assignment and creates the
// new one in the same transaction, so at most one assignment is ever active.
func (s *SalaryStructureServiceImpl) AssignToEmployee(ctx context.Context, req salary.AssignSalaryStructureRequest) (salary.EmployeeSalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.EmployeeSalaryResponse{}, err
	}
	effectiveFrom, err := time.Parse(dateLayout, req.EffectiveFrom)
	if err != nil {
		var errs validator.ValidationErrors
		errs.Add("effective_from", "must be a date in YYYY-MM-DD format")
		return salary.EmployeeSalaryResponse{}, errs
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.EmployeeSalaryResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return salary.EmployeeSalaryResponse{}, err
	}

	var (
		structure salary.SalaryStructure
		created   salary.Assignment
	)
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		structure, err = s.salaryRepo.GetByID(txCtx, req.StructureID, companyID)
		if err != nil {
			return err
		}

		current, err := s.salaryRepo.GetActiveAssignment(txCtx, req.EmployeeID)
		switch {
		case err == nil:
			if effectiveFrom.Before(current.EffectiveFrom) {
				return salary.ErrEffectiveDateBeforeCurrent
			}
			if err := s.salaryRepo.DeactivateAssignment(txCtx, current.ID, effectiveFrom); err != nil {
				return err
			}
		case !errors.Is(err, salary.ErrNoActiveSalaryStructure):
			return err
		}

		assignment := salary.Assignment{
			EmployeeID:    req.EmployeeID,
			StructureID:   structure.ID,
			EffectiveFrom: effectiveFrom,
			IsActive:      true,
			Notes:         req.Notes,
		}
		if userID != "" {
			assignment.AssignedBy = &userID
		}
		created, err = s.salaryRepo.CreateAssignment(txCtx, assignment)
		if err != nil {
			return err
		}

		entry := audit.Entry{
			CompanyID:  companyID,
			Action:     audit.ActionSalaryAssigned,
			EntityType: audit.EntityEmployee,
			EntityID:   req.EmployeeID,
			Payload: map[string]string{
				"assignment_id":  created.ID,
				"structure_id":   structure.ID,
				"effective_from": req.EffectiveFrom,
			},
		}
		if userID != "" {
			entry.UserID = &userID
		}
		return s.auditRepo.Record(txCtx, entry)
	})
	if err != nil {
		return salary.EmployeeSalaryResponse{}, err
	}

	return salary.EmployeeSalaryResponse{
		Assignment: toAssignmentResponse(created),
		Structure:  toStructureResponse(structure),
	}, nil
}

func (s *SalaryStructureServiceImpl) GetEmployeeSalary(ctx context.Context, employeeID string) (salary.EmployeeSalaryResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return salary.EmployeeSalaryResponse{}, employee.ErrEmployeeNotFound
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.EmployeeSalaryResponse{}, err
	}

	structure, assignment, err := s.salaryRepo.GetActiveStructure(ctx, employeeID, companyID)
	if err != nil {
		return salary.EmployeeSalaryResponse{}, err
	}

	return salary.EmployeeSalaryResponse{
		Assignment: toAssignmentResponse(assignment),
		Structure:  toStructureResponse(structure),
	}, nil
}

// Resolve returns the structure of the employee's single active assignment,
// or ErrNoActiveSalaryStructure.
func (s *SalaryStructureServiceImpl) Resolve(ctx context.Context, companyID, employeeID string) (salary.SalaryStructure, error) {
	structure, _, err := s.salaryRepo.GetActiveStructure(ctx, employeeID, companyID)
	if err != nil {
		return salary.SalaryStructure{}, err
	}
	return structure, nil
}

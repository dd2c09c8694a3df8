package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-payroll-go/internal/messaging/outbox"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

// LeaveSeeder allocates leave balances for a new hire inside the onboarding transaction.
type LeaveSeeder interface {
	SeedForEmployee(ctx context.Context, emp employee.Employee, year int) (int, error)
}

type EmployeeServiceImpl struct {
	transactor    database.Transactor
	employeeRepo  employee.EmployeeRepository
	companyRepo   company.CompanyRepository
	userRepo      user.UserRepository
	checklistRepo employee.ChecklistRepository
	auditRepo     audit.AuditRepository
	events        outbox.Writer
	allocator     employee.NumberAllocator
	leaveSeeder   LeaveSeeder
	now           func() time.Time
}

func NewEmployeeService(
	transactor database.Transactor,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	userRepo user.UserRepository,
	checklistRepo employee.ChecklistRepository,
	auditRepo audit.AuditRepository,
	events outbox.Writer,
	allocator employee.NumberAllocator,
	leaveSeeder LeaveSeeder,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		transactor:    transactor,
		employeeRepo:  employeeRepo,
		companyRepo:   companyRepo,
		userRepo:      userRepo,
		checklistRepo: checklistRepo,
		auditRepo:     auditRepo,
		events:        events,
		allocator:     allocator,
		leaveSeeder:   leaveSeeder,
		now:           time.Now,
	}
}

var _ employee.EmployeeService = (*EmployeeServiceImpl)(nil)

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

type onboardedEvent struct {
	EmployeeID     string `json:"employee_id"`
	CompanyID      string `json:"company_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	HireDate       string `json:"hire_date"`
	LoginCreated   bool   `json:"login_created"`
}

// Onboard creates the employee and everything a new hire needs in one transaction.
// Any failure rolls back all of it, including the allocated employee number.
func (s *EmployeeServiceImpl) Onboard(ctx context.Context, req employee.OnboardEmployeeRequest) (employee.OnboardingResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.OnboardingResponse{}, err
	}

	companyID, actorID, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.OnboardingResponse{}, err
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	year := s.now().Year()

	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return employee.OnboardingResponse{}, err
	}

	// Hash outside the transaction so the sequence locks are held as briefly as possible
	var passwordHash string
	if req.CreateLogin {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.InitialPassword), bcrypt.DefaultCost)
		if err != nil {
			return employee.OnboardingResponse{}, fmt.Errorf("hash initial password: %w", err)
		}
		passwordHash = string(hash)
	}

	var (
		created        employee.Employee
		seeded         int
		checklistItems int
	)
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		number, err := s.allocator.NextEmployeeNumber(txCtx, companyID, year)
		if err != nil {
			return err
		}

		// The company row is locked from here on, so this check cannot race another onboarding
		nationalIDTaken, emailTaken, err := s.employeeRepo.ExistsByNationalIDOrEmail(txCtx, companyID, req.NationalID, req.Email)
		if err != nil {
			return fmt.Errorf("check duplicate employee: %w", err)
		}
		if nationalIDTaken {
			return employee.ErrNationalIDExists
		}
		if emailTaken {
			return employee.ErrEmailExists
		}

		newEmployee := employee.Employee{
			CompanyID:        companyID,
			EmployeeNumber:   number,
			FullName:         req.FullName,
			NationalID:       req.NationalID,
			Email:            req.Email,
			PhoneNumber:      req.PhoneNumber,
			Department:       req.Department,
			JobTitle:         req.JobTitle,
			HireDate:         hireDate,
			EmploymentType:   employee.EmploymentType(req.EmploymentType),
			EmploymentStatus: employee.EmploymentStatusActive,
			BankName:         req.BankName,
			BankAccount:      req.BankAccount,
		}

		if req.CreateLogin {
			account, err := s.userRepo.Create(txCtx, user.User{
				CompanyID:    companyID,
				Email:        req.Email,
				PasswordHash: passwordHash,
				Role:         user.RoleEmployee,
			})
			if err != nil {
				return err
			}
			newEmployee.UserID = &account.ID
		}

		created, err = s.employeeRepo.Create(txCtx, newEmployee)
		if err != nil {
			return err
		}

		seeded, err = s.leaveSeeder.SeedForEmployee(txCtx, created, year)
		if err != nil {
			return err
		}

		items := fixtures.GetDefaultOnboardingChecklist(created.ID, hireDate)
		if err := s.checklistRepo.CreateItems(txCtx, items); err != nil {
			return fmt.Errorf("create onboarding checklist: %w", err)
		}
		checklistItems = len(items)

		payload := onboardedEvent{
			EmployeeID:     created.ID,
			CompanyID:      companyID,
			EmployeeNumber: created.EmployeeNumber,
			FullName:       created.FullName,
			Email:          created.Email,
			HireDate:       req.HireDate,
			LoginCreated:   req.CreateLogin,
		}

		entry := audit.Entry{
			CompanyID:  companyID,
			Action:     audit.ActionEmployeeOnboard,
			EntityType: audit.EntityEmployee,
			EntityID:   created.ID,
			Payload:    payload,
		}
		if actorID != "" {
			entry.UserID = &actorID
		}
		if err := s.auditRepo.Record(txCtx, entry); err != nil {
			return fmt.Errorf("record audit entry: %w", err)
		}

		event, err := outbox.NewEvent(audit.EntityEmployee, created.ID, employee.EventEmployeeOnboarded, payload)
		if err != nil {
			return err
		}
		return s.events.Create(txCtx, event)
	})
	if err != nil {
		return employee.OnboardingResponse{}, s.onboardingError(companyID, err)
	}

	slog.Info("Employee onboarded",
		"company_id", companyID,
		"employee_id", created.ID,
		"employee_number", created.EmployeeNumber,
		"leave_balances", seeded,
	)

	return employee.OnboardingResponse{
		Employee:            toEmployeeResponse(created),
		LoginCreated:        req.CreateLogin,
		LeaveBalancesSeeded: seeded,
		ChecklistItems:      checklistItems,
	}, nil
}

// onboardingError keeps classified errors and turns anything else into a
// single persistence failure so the client never sees driver messages.
func (s *EmployeeServiceImpl) onboardingError(companyID string, err error) error {
	if errors.Is(err, employee.ErrSequenceLockTimeout) {
		slog.Error("Employee number allocation timed out", "company_id", companyID, "error", err)
		return err
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	slog.Error("Employee onboarding rolled back", "company_id", companyID, "error", err)
	return fmt.Errorf("%w: %w", employee.ErrOnboardingFailed, err)
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(emp), nil
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:               e.ID,
		EmployeeNumber:   e.EmployeeNumber,
		FullName:         e.FullName,
		NationalID:       e.NationalID,
		Email:            e.Email,
		PhoneNumber:      e.PhoneNumber,
		Department:       e.Department,
		JobTitle:         e.JobTitle,
		HireDate:         e.HireDate.Format("2006-01-02"),
		EmploymentType:   string(e.EmploymentType),
		EmploymentStatus: string(e.EmploymentStatus),
		UserID:           e.UserID,
	}
}

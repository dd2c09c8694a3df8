package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/fixtures"
)

// BalanceSeeder allocates the first year of leave for a newly onboarded employee.
type BalanceSeeder struct {
	leaveRepo leave.LeaveRepository
}

func NewBalanceSeeder(leaveRepo leave.LeaveRepository) *BalanceSeeder {
	return &BalanceSeeder{leaveRepo: leaveRepo}
}

// SeedForEmployee creates one balance per active leave type of the company for year.
// A company with no leave types gets the statutory defaults first. When the employee
// was hired during year, allocations are prorated from the hire month.
// Must be called with the onboarding transaction context.
func (s *BalanceSeeder) SeedForEmployee(ctx context.Context, emp employee.Employee, year int) (int, error) {
	types, err := s.leaveRepo.ListActiveTypes(ctx, emp.CompanyID)
	if err != nil {
		return 0, fmt.Errorf("list leave types: %w", err)
	}

	if len(types) == 0 {
		types, err = s.leaveRepo.CreateTypes(ctx, fixtures.GetDefaultLeaveTypes(emp.CompanyID))
		if err != nil {
			return 0, fmt.Errorf("create default leave types: %w", err)
		}
		slog.Info("Created default leave types", "company_id", emp.CompanyID, "count", len(types))
	}

	balances := make([]leave.LeaveBalance, 0, len(types))
	for _, lt := range types {
		allocated := lt.DefaultDays
		if emp.HireDate.Year() == year {
			allocated = leave.ProratedDays(lt.DefaultDays, int(emp.HireDate.Month()))
		}
		balances = append(balances, leave.LeaveBalance{
			EmployeeID:    emp.ID,
			LeaveTypeID:   lt.ID,
			Year:          year,
			AllocatedDays: allocated,
		})
	}

	if err := s.leaveRepo.CreateBalances(ctx, balances); err != nil {
		return 0, fmt.Errorf("create leave balances: %w", err)
	}
	return len(balances), nil
}

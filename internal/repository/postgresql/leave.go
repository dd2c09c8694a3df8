package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

func (r *leaveRepositoryImpl) ListActiveTypes(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, code, default_days, is_active
		FROM leave_types
		WHERE company_id = $1 AND is_active
		ORDER BY code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	types, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (leave.LeaveType, error) {
		var lt leave.LeaveType
		err := row.Scan(&lt.ID, &lt.CompanyID, &lt.Name, &lt.Code, &lt.DefaultDays, &lt.IsActive)
		return lt, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan leave types: %w", err)
	}
	return types, nil
}

// CreateTypes skips codes the company already has and returns the rows it inserted.
func (r *leaveRepositoryImpl) CreateTypes(ctx context.Context, types []leave.LeaveType) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (company_id, name, code, default_days, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT uk_leave_types_code DO NOTHING
		RETURNING id, company_id, name, code, default_days, is_active
	`

	created := make([]leave.LeaveType, 0, len(types))
	for _, t := range types {
		rows, err := q.Query(ctx, query, t.CompanyID, t.Name, t.Code, t.DefaultDays, t.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to create leave type %s: %w", t.Code, err)
		}
		inserted, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (leave.LeaveType, error) {
			var lt leave.LeaveType
			err := row.Scan(&lt.ID, &lt.CompanyID, &lt.Name, &lt.Code, &lt.DefaultDays, &lt.IsActive)
			return lt, err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type %s: %w", t.Code, err)
		}
		created = append(created, inserted...)
	}

	return created, nil
}

func (r *leaveRepositoryImpl) CreateBalances(ctx context.Context, balances []leave.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type_id, year, allocated_days, used_days)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, b := range balances {
		if _, err := q.Exec(ctx, query, b.EmployeeID, b.LeaveTypeID, b.Year, b.AllocatedDays, b.UsedDays); err != nil {
			return fmt.Errorf("failed to create leave balance: %w", err)
		}
	}
	return nil
}

package leave

import "context"

type LeaveRepository interface {
	ListActiveTypes(ctx context.Context, companyID string) ([]LeaveType, error)
	CreateTypes(ctx context.Context, types []LeaveType) ([]LeaveType, error)
	CreateBalances(ctx context.Context, balances []LeaveBalance) error
}

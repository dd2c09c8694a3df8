package employee

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

const DefaultLockTimeout = 5 * time.Second

// SequenceAllocator hands out CODE-YEAR-NNN numbers. Callers must pass the
// onboarding transaction context: the company row and the latest number stay
// locked until that transaction ends, which serializes concurrent onboardings
// of one company.
type SequenceAllocator struct {
	repo        employee.SequenceRepository
	lockTimeout time.Duration
}

func NewSequenceAllocator(repo employee.SequenceRepository, lockTimeout time.Duration) *SequenceAllocator {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &SequenceAllocator{repo: repo, lockTimeout: lockTimeout}
}

var _ employee.NumberAllocator = (*SequenceAllocator)(nil)

func (a *SequenceAllocator) NextEmployeeNumber(ctx context.Context, companyID string, year int) (string, error) {
	if err := a.repo.SetLockTimeout(ctx, a.lockTimeout); err != nil {
		return "", err
	}

	code, err := a.repo.LockOrganizationCode(ctx, companyID)
	if err != nil {
		return "", err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if !validator.IsValidOrganizationCode(code) {
		return "", fmt.Errorf("%w: %q", employee.ErrInvalidOrganizationCode, code)
	}

	prefix := fmt.Sprintf("%s-%d-", code, year)
	latest, found, err := a.repo.LatestEmployeeNumber(ctx, companyID, prefix)
	if err != nil {
		return "", err
	}

	next := 1
	if found {
		n, err := parseSequenceSuffix(latest, prefix)
		if err != nil {
			return "", err
		}
		next = n + 1
	}

	return FormatEmployeeNumber(code, year, next), nil
}

// FormatEmployeeNumber zero-pads the sequence to three digits; larger values keep all their digits.
func FormatEmployeeNumber(code string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", code, year, seq)
}

func parseSequenceSuffix(number, prefix string) (int, error) {
	suffix, ok := strings.CutPrefix(number, prefix)
	if !ok || suffix == "" {
		return 0, fmt.Errorf("%w: %q", employee.ErrMalformedEmployeeNumber, number)
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", employee.ErrMalformedEmployeeNumber, number)
		}
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", employee.ErrMalformedEmployeeNumber, number)
	}
	return n, nil
}

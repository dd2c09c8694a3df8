package salary

import "github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"

var (
	ErrSalaryStructureNotFound    = apperror.New(apperror.KindNotFound, "salary structure not found")
	ErrNoActiveSalaryStructure    = apperror.New(apperror.KindNotFound, "employee has no active salary structure")
	ErrEmployeeNotFound           = apperror.New(apperror.KindNotFound, "employee not found")
	ErrAssignmentConflict         = apperror.New(apperror.KindConflict, "employee salary assignment was changed concurrently, retry the request")
	ErrEffectiveDateBeforeCurrent = apperror.New(apperror.KindValidation, "effective_from must not be earlier than the current assignment's effective date")
)

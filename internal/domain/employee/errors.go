package employee

import "github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound        = apperror.New(apperror.KindNotFound, "employee not found")
	ErrCompanyNotFound         = apperror.New(apperror.KindNotFound, "company not found")
	ErrNationalIDExists        = apperror.New(apperror.KindConflict, "national ID already registered in this company")
	ErrEmailExists             = apperror.New(apperror.KindConflict, "email already registered in this company")
	ErrEmployeeNumberExists    = apperror.New(apperror.KindConflict, "employee number already allocated")
	ErrSequenceLockTimeout     = apperror.New(apperror.KindPersistence, "employee number allocation timed out waiting for a lock, retry the request")
	ErrMalformedEmployeeNumber = apperror.New(apperror.KindPersistence, "existing employee number has an unexpected format")
	ErrInvalidOrganizationCode = apperror.New(apperror.KindPersistence, "company code is not usable as an employee number prefix")
	ErrOnboardingFailed        = apperror.New(apperror.KindPersistence, "employee onboarding could not be saved")
)

package user

import "github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"

var (
	ErrUserEmailExists       = apperror.New(apperror.KindConflict, "email already registered")
	ErrInvalidToken          = apperror.New(apperror.KindUnauthorized, "invalid or missing access token")
	ErrCompanyIDRequired     = apperror.New(apperror.KindUnauthorized, "company ID is required")
	ErrManagerAccessRequired = apperror.New(apperror.KindForbidden, "manager access required")
)

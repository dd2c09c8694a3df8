package company

import "github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"

var ErrCompanyNotFound = apperror.New(apperror.KindNotFound, "company not found")

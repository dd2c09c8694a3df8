package postgresql_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	employeeservice "github.com/cmlabs-hris/hris-payroll-go/internal/service/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_ListActiveOrdersNumbersNumerically(t *testing.T) {
	db := requireDB(t)
	companyID := createTestCompany(t, "ACME")
	createTestEmployee(t, companyID, "ACME-2025-1000", "10000000")
	createTestEmployee(t, companyID, "ACME-2025-999", "09990000")
	createTestEmployee(t, companyID, "ACME-2025-002", "00020000")

	employees, err := postgresql.NewEmployeeRepository(db).ListActive(context.Background(), companyID)
	require.NoError(t, err)

	numbers := make([]string, 0, len(employees))
	for _, e := range employees {
		numbers = append(numbers, e.EmployeeNumber)
	}
	assert.Equal(t, []string{"ACME-2025-002", "ACME-2025-999", "ACME-2025-1000"}, numbers)
}

func TestEmployeeRepository_CreateMapsUniqueViolations(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	companyID := createTestCompany(t, "ACME")
	createTestEmployee(t, companyID, "ACME-2025-001", "12345678")
	repo := postgresql.NewEmployeeRepository(db)

	base := employee.Employee{
		CompanyID:        companyID,
		EmployeeNumber:   "ACME-2025-002",
		FullName:         "Achieng Otieno",
		NationalID:       "87654321",
		Email:            "achieng@example.com",
		HireDate:         time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		EmploymentType:   employee.EmploymentTypePermanent,
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	dupNumber := base
	dupNumber.EmployeeNumber = "ACME-2025-001"
	_, err := repo.Create(ctx, dupNumber)
	assert.ErrorIs(t, err, employee.ErrEmployeeNumberExists)

	dupNationalID := base
	dupNationalID.NationalID = "12345678"
	_, err = repo.Create(ctx, dupNationalID)
	assert.ErrorIs(t, err, employee.ErrNationalIDExists)

	created, err := repo.Create(ctx, base)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	nationalIDTaken, emailTaken, err := repo.ExistsByNationalIDOrEmail(ctx, companyID, "00000001", "ACHIENG@example.com")
	require.NoError(t, err)
	assert.False(t, nationalIDTaken)
	assert.True(t, emailTaken)
}

func TestSequenceAllocator_ConcurrentOnboardingsGetDistinctNumbers(t *testing.T) {
	db := requireDB(t)
	companyID := createTestCompany(t, "ACME")
	createTestEmployee(t, companyID, "ACME-2025-998", "09980000")

	transactor := postgresql.NewTransactor(db)
	allocator := employeeservice.NewSequenceAllocator(postgresql.NewSequenceRepository(db), 5*time.Second)
	employees := postgresql.NewEmployeeRepository(db)

	const workers = 5
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- transactor.WithinTransaction(context.Background(), func(txCtx context.Context) error {
				number, err := allocator.NextEmployeeNumber(txCtx, companyID, 2025)
				if err != nil {
					return err
				}
				_, err = employees.Create(txCtx, employee.Employee{
					CompanyID:        companyID,
					EmployeeNumber:   number,
					FullName:         fmt.Sprintf("Worker %d", i),
					NationalID:       fmt.Sprintf("%08d", 20000000+i),
					Email:            fmt.Sprintf("worker%d@example.com", i),
					HireDate:         time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
					EmploymentType:   employee.EmploymentTypePermanent,
					EmploymentStatus: employee.EmploymentStatusActive,
				})
				return err
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := employees.ListActive(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, list, workers+1)
	assert.Equal(t, "ACME-2025-999", list[1].EmployeeNumber)
	assert.Equal(t, "ACME-2025-1003", list[workers].EmployeeNumber)
}

func TestSequenceAllocator_ComparesSuffixesNumerically(t *testing.T) {
	db := requireDB(t)
	companyID := createTestCompany(t, "ACME")
	createTestEmployee(t, companyID, "ACME-2026-999", "09990000")
	createTestEmployee(t, companyID, "ACME-2026-0005", "00050000")
	createTestEmployee(t, companyID, "ACME-2026-ABC", "00060000")
	createTestEmployee(t, companyID, "ACME-2026-0000", "00070000")

	transactor := postgresql.NewTransactor(db)
	allocator := employeeservice.NewSequenceAllocator(postgresql.NewSequenceRepository(db), 5*time.Second)

	var number string
	err := transactor.WithinTransaction(context.Background(), func(txCtx context.Context) error {
		var err error
		number, err = allocator.NextEmployeeNumber(txCtx, companyID, 2026)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME-2026-1000", number)
}

func TestSequenceAllocator_IgnoresNonNumericSuffixes(t *testing.T) {
	db := requireDB(t)
	companyID := createTestCompany(t, "ACME")
	createTestEmployee(t, companyID, "ACME-2026-TEMP", "00080000")

	transactor := postgresql.NewTransactor(db)
	allocator := employeeservice.NewSequenceAllocator(postgresql.NewSequenceRepository(db), 5*time.Second)

	var number string
	err := transactor.WithinTransaction(context.Background(), func(txCtx context.Context) error {
		var err error
		number, err = allocator.NextEmployeeNumber(txCtx, companyID, 2026)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME-2026-001", number)
}

func TestSequenceRepository_RequiresTransaction(t *testing.T) {
	db := requireDB(t)
	companyID := createTestCompany(t, "ACME")

	_, err := postgresql.NewSequenceRepository(db).LockOrganizationCode(context.Background(), companyID)
	assert.Error(t, err)
}

package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee/mock"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/messaging/outbox"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const (
	testManagerID  = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	testEmployeeID = "5b2d7c1a-0e3f-4a6b-9c8d-7e6f5a4b3c2d"
	testAccountID  = "1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f"
)

type recordingTransactor struct {
	commits   int
	rollbacks int
}

func (r *recordingTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := fn(ctx); err != nil {
		r.rollbacks++
		return err
	}
	r.commits++
	return nil
}

type fakeCompanyRepository struct {
	companies map[string]company.Company
}

func (f *fakeCompanyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

type fakeUserRepository struct {
	created []user.User
}

func (f *fakeUserRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	newUser.ID = testAccountID
	f.created = append(f.created, newUser)
	return newUser, nil
}

type fakeAllocator struct {
	number string
	err    error
	years  []int
}

func (f *fakeAllocator) NextEmployeeNumber(ctx context.Context, companyID string, year int) (string, error) {
	f.years = append(f.years, year)
	return f.number, f.err
}

type fakeLeaveSeeder struct {
	seeded int
	err    error
}

func (f *fakeLeaveSeeder) SeedForEmployee(ctx context.Context, emp employee.Employee, year int) (int, error) {
	return f.seeded, f.err
}

type fakeAuditRepository struct {
	entries []audit.Entry
}

func (f *fakeAuditRepository) Record(ctx context.Context, entry audit.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeOutbox struct {
	events []outbox.Event
}

func (f *fakeOutbox) Create(ctx context.Context, event outbox.Event) error {
	f.events = append(f.events, event)
	return nil
}

type onboardingHarness struct {
	svc         *EmployeeServiceImpl
	transactor  *recordingTransactor
	employees   *mock.MockEmployeeRepository
	checklists  *mock.MockChecklistRepository
	users       *fakeUserRepository
	allocator   *fakeAllocator
	leaveSeeder *fakeLeaveSeeder
	audits      *fakeAuditRepository
	events      *fakeOutbox
}

func newOnboardingHarness(t *testing.T) *onboardingHarness {
	ctrl := gomock.NewController(t)
	h := &onboardingHarness{
		transactor:  &recordingTransactor{},
		employees:   mock.NewMockEmployeeRepository(ctrl),
		checklists:  mock.NewMockChecklistRepository(ctrl),
		users:       &fakeUserRepository{},
		allocator:   &fakeAllocator{number: "ACME-2025-042"},
		leaveSeeder: &fakeLeaveSeeder{seeded: 5},
		audits:      &fakeAuditRepository{},
		events:      &fakeOutbox{},
	}
	companies := &fakeCompanyRepository{companies: map[string]company.Company{
		testCompanyID: {ID: testCompanyID, Name: "Acme Ltd", Code: "ACME"},
	}}
	h.svc = NewEmployeeService(
		h.transactor,
		h.employees,
		companies,
		h.users,
		h.checklists,
		h.audits,
		h.events,
		h.allocator,
		h.leaveSeeder,
	)
	h.svc.now = func() time.Time { return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) }
	return h
}

func managerContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("company_id", companyID))
	require.NoError(t, tok.Set("user_id", testManagerID))
	require.NoError(t, tok.Set("role", string(user.RoleManager)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func validOnboardRequest() employee.OnboardEmployeeRequest {
	return employee.OnboardEmployeeRequest{
		FullName:       "Wanjiku Kamau",
		NationalID:     "12345678",
		Email:          "Wanjiku.Kamau@acme.co.ke",
		HireDate:       "2025-06-02",
		EmploymentType: "Permanent",
	}
}

func TestOnboard_CreatesEmployeeWithLogin(t *testing.T) {
	h := newOnboardingHarness(t)
	ctx := managerContext(t, testCompanyID)

	req := validOnboardRequest()
	req.CreateLogin = true
	req.InitialPassword = "s3cret-pass"

	h.employees.EXPECT().
		ExistsByNationalIDOrEmail(gomock.Any(), testCompanyID, "12345678", "wanjiku.kamau@acme.co.ke").
		Return(false, false, nil)
	h.employees.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, e employee.Employee) (employee.Employee, error) {
			assert.Equal(t, "ACME-2025-042", e.EmployeeNumber)
			assert.Equal(t, employee.EmploymentTypePermanent, e.EmploymentType)
			assert.Equal(t, employee.EmploymentStatusActive, e.EmploymentStatus)
			require.NotNil(t, e.UserID)
			assert.Equal(t, testAccountID, *e.UserID)
			e.ID = testEmployeeID
			return e, nil
		})
	h.checklists.EXPECT().
		CreateItems(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, items []employee.ChecklistItem) error {
			require.NotEmpty(t, items)
			for _, item := range items {
				assert.Equal(t, testEmployeeID, item.EmployeeID)
			}
			return nil
		})

	resp, err := h.svc.Onboard(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, testEmployeeID, resp.Employee.ID)
	assert.Equal(t, "ACME-2025-042", resp.Employee.EmployeeNumber)
	assert.Equal(t, "2025-06-02", resp.Employee.HireDate)
	assert.True(t, resp.LoginCreated)
	assert.Equal(t, 5, resp.LeaveBalancesSeeded)
	assert.Equal(t, 9, resp.ChecklistItems)
	assert.Equal(t, []int{2025}, h.allocator.years)

	require.Len(t, h.users.created, 1)
	account := h.users.created[0]
	assert.Equal(t, user.RoleEmployee, account.Role)
	assert.Equal(t, "wanjiku.kamau@acme.co.ke", account.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("s3cret-pass")))

	require.Len(t, h.audits.entries, 1)
	assert.Equal(t, audit.ActionEmployeeOnboard, h.audits.entries[0].Action)
	require.NotNil(t, h.audits.entries[0].UserID)
	assert.Equal(t, testManagerID, *h.audits.entries[0].UserID)

	require.Len(t, h.events.events, 1)
	assert.Equal(t, employee.EventEmployeeOnboarded, h.events.events[0].EventType)
	assert.Equal(t, testEmployeeID, h.events.events[0].AggregateID)
	assert.Equal(t, 1, h.transactor.commits)
}

func TestOnboard_WithoutLogin(t *testing.T) {
	h := newOnboardingHarness(t)

	h.employees.EXPECT().ExistsByNationalIDOrEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, false, nil)
	h.employees.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, e employee.Employee) (employee.Employee, error) {
			assert.Nil(t, e.UserID)
			e.ID = testEmployeeID
			return e, nil
		})
	h.checklists.EXPECT().CreateItems(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := h.svc.Onboard(managerContext(t, testCompanyID), validOnboardRequest())
	require.NoError(t, err)
	assert.False(t, resp.LoginCreated)
	assert.Empty(t, h.users.created)
}

func TestOnboard_DuplicateIdentity(t *testing.T) {
	tests := []struct {
		name       string
		nationalID bool
		email      bool
		want       error
	}{
		{name: "national id", nationalID: true, want: employee.ErrNationalIDExists},
		{name: "email", email: true, want: employee.ErrEmailExists},
		{name: "both reports national id", nationalID: true, email: true, want: employee.ErrNationalIDExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newOnboardingHarness(t)
			h.employees.EXPECT().
				ExistsByNationalIDOrEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(tt.nationalID, tt.email, nil)

			_, err := h.svc.Onboard(managerContext(t, testCompanyID), validOnboardRequest())
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
			assert.Equal(t, 1, h.transactor.rollbacks)
			assert.Empty(t, h.events.events)
		})
	}
}

func TestOnboard_SeederFailureRollsBack(t *testing.T) {
	h := newOnboardingHarness(t)
	h.leaveSeeder.err = errors.New("insert leave_balances: connection reset")

	h.employees.EXPECT().ExistsByNationalIDOrEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, false, nil)
	h.employees.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, e employee.Employee) (employee.Employee, error) {
			e.ID = testEmployeeID
			return e, nil
		})

	_, err := h.svc.Onboard(managerContext(t, testCompanyID), validOnboardRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, employee.ErrOnboardingFailed)
	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
	assert.Equal(t, 1, h.transactor.rollbacks)
	assert.Empty(t, h.audits.entries)
	assert.Empty(t, h.events.events)
}

func TestOnboard_LockTimeoutPassesThrough(t *testing.T) {
	h := newOnboardingHarness(t)
	h.allocator.err = employee.ErrSequenceLockTimeout

	_, err := h.svc.Onboard(managerContext(t, testCompanyID), validOnboardRequest())
	assert.ErrorIs(t, err, employee.ErrSequenceLockTimeout)
	assert.NotErrorIs(t, err, employee.ErrOnboardingFailed)
}

func TestOnboard_Validation(t *testing.T) {
	h := newOnboardingHarness(t)

	req := validOnboardRequest()
	req.NationalID = "12AB"
	req.CreateLogin = true
	req.InitialPassword = "short"

	_, err := h.svc.Onboard(managerContext(t, testCompanyID), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "national_id")
	assert.Contains(t, fields, "initial_password")
	assert.Equal(t, 0, h.transactor.commits+h.transactor.rollbacks)
}

func TestOnboard_UnknownCompany(t *testing.T) {
	h := newOnboardingHarness(t)

	_, err := h.svc.Onboard(managerContext(t, "00000000-0000-4000-8000-000000000000"), validOnboardRequest())
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestOnboard_RequiresCompanyClaim(t *testing.T) {
	h := newOnboardingHarness(t)

	_, err := h.svc.Onboard(context.Background(), validOnboardRequest())
	assert.ErrorIs(t, err, user.ErrInvalidToken)

	_, err = h.svc.Onboard(managerContext(t, ""), validOnboardRequest())
	assert.ErrorIs(t, err, user.ErrCompanyIDRequired)
	assert.Equal(t, 0, h.transactor.commits+h.transactor.rollbacks)
}

func TestGetByID(t *testing.T) {
	h := newOnboardingHarness(t)
	ctx := managerContext(t, testCompanyID)

	h.employees.EXPECT().
		GetByID(gomock.Any(), testEmployeeID, testCompanyID).
		Return(employee.Employee{
			ID:               testEmployeeID,
			EmployeeNumber:   "ACME-2025-001",
			FullName:         "Otieno Ochieng",
			HireDate:         time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			EmploymentType:   employee.EmploymentTypeContract,
			EmploymentStatus: employee.EmploymentStatusActive,
		}, nil)

	resp, err := h.svc.GetByID(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, "ACME-2025-001", resp.EmployeeNumber)
	assert.Equal(t, "2025-01-06", resp.HireDate)
	assert.Equal(t, "contract", resp.EmploymentType)

	_, err = h.svc.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

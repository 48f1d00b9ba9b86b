package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hris-service/internal/domain"
)

func newLeaveStore(t *testing.T) Repository[*domain.LeaveRequest] {
	t.Helper()
	return NewMemoryRepository(LeaveRequests, nil, nil)
}

func TestMemoryCreateAlwaysStartsPending(t *testing.T) {
	ctx := context.Background()
	repo := newLeaveStore(t)

	created, err := repo.Create(ctx, &domain.LeaveRequest{
		Meta:         domain.Meta{CompanyID: "acme"},
		EmployeeName: "Jane",
		Type:         "Sick Leave",
		StartDate:    "2024-01-20",
		EndDate:      "2024-01-22",
		Status:       domain.LeaveStatusApproved,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.LeaveStatusPending, created.Status)
	assert.Zero(t, created.TotalDays)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.EmployeeName)
	assert.Equal(t, "Sick Leave", got.Type)
	assert.Equal(t, "acme", got.CompanyID)
	assert.Equal(t, domain.LeaveStatusPending, got.Status)
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := newLeaveStore(t)

	created, err := repo.Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}, EmployeeName: "Jane"})
	require.NoError(t, err)
	created.EmployeeName = "Mallory"

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.EmployeeName)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := newLeaveStore(t)

	created, err := repo.Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}})
	require.NoError(t, err)

	assert.True(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.False(t, repo.Delete(ctx, created.ID))
	assert.False(t, repo.Delete(ctx, "does-not-exist"))
}

func TestMemoryUpdateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newLeaveStore(t)

	created, err := repo.Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}, EmployeeName: "Jane"})
	require.NoError(t, err)

	patch := Patch{"status": "Approved", "approver": "HR Manager"}
	first, err := repo.Update(ctx, created.ID, patch)
	require.NoError(t, err)
	second, err := repo.Update(ctx, created.ID, patch)
	require.NoError(t, err)

	first.UpdatedAt, second.UpdatedAt = time.Time{}, time.Time{}
	assert.Equal(t, first, second)
	assert.Equal(t, domain.LeaveStatusApproved, second.Status)
	assert.Equal(t, "Jane", second.EmployeeName)
}

func TestMemoryUpdateKeepsMeta(t *testing.T) {
	ctx := context.Background()
	repo := newLeaveStore(t)

	created, err := repo.Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}, Reason: "flu"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, Patch{"id": "other", "companyId": "globex", "reason": nil})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "acme", updated.CompanyID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Empty(t, updated.Reason)
}

func TestMemoryUpdateErrors(t *testing.T) {
	ctx := context.Background()
	repo := newLeaveStore(t)

	_, err := repo.Update(ctx, "missing", Patch{"status": "Approved"})
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := repo.Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}})
	require.NoError(t, err)
	_, err = repo.Update(ctx, created.ID, Patch{"totalDays": "three"})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestMemoryListIsScopedAndNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newLeaveStore(t)

	_, err := repo.List(ctx, Query{})
	require.ErrorIs(t, err, ErrTenantRequired)

	for _, name := range []string{"Ann", "Bob", "Cid"} {
		_, err := repo.Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}, EmployeeName: name})
		require.NoError(t, err)
	}
	_, err = repo.Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "globex"}, EmployeeName: "Eve"})
	require.NoError(t, err)

	list, err := repo.List(ctx, Query{CompanyID: "acme"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Cid", list[0].EmployeeName)
	assert.Equal(t, "Ann", list[2].EmployeeName)

	limited, err := repo.List(ctx, Query{CompanyID: "acme", Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Cid", limited[0].EmployeeName)

	filtered, err := repo.List(ctx, Query{CompanyID: "acme", Where: map[string]string{"employeeName": "Bob"}})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Bob", filtered[0].EmployeeName)
}

func TestMemorySeededLeaveTypesInInsertionOrder(t *testing.T) {
	repo := NewMemoryRepository(LeaveTypes, nil, nil)

	list, err := repo.List(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Annual Leave", list[0].Name)
	assert.Equal(t, "Sick Leave", list[1].Name)
	assert.Equal(t, "Personal Leave", list[2].Name)
	assert.Equal(t, 20, list[0].DaysAllowed)
}

func TestMemoryIDsStayUniqueWithinAMillisecond(t *testing.T) {
	frozen := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	repo := newMemoryRepository(Companies, nil, nil, func() time.Time { return frozen })

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		created, err := repo.Create(context.Background(), &domain.Company{Name: "Acme"})
		require.NoError(t, err)
		assert.False(t, seen[created.ID], "duplicate id %s", created.ID)
		seen[created.ID] = true
	}
	assert.True(t, seen["1705741200000"])
}

func TestMemoryCreateRequiresTenant(t *testing.T) {
	_, err := newLeaveStore(t).Create(context.Background(), &domain.LeaveRequest{EmployeeName: "Jane"})
	assert.ErrorIs(t, err, ErrTenantRequired)
}

func TestPayrollNetPayComputedOnCreate(t *testing.T) {
	repo := NewMemoryRepository(PayrollRecords, nil, nil)
	record := &domain.PayrollRecord{Meta: domain.Meta{CompanyID: "acme"}}
	require.NoError(t, decodeInto(`{"baseSalary":"5000","allowances":"250.50","deductions":"100","tax":"900.25"}`, record))

	created, err := repo.Create(context.Background(), record)
	require.NoError(t, err)
	require.NotNil(t, created.NetPay)
	assert.Equal(t, "4250.25", created.NetPay.String())
	assert.Equal(t, domain.PayrollStatusDraft, created.Status)
}

func TestMemoryRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	repo := newLeaveStore(t)
	created, err := repo.Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}, EmployeeName: "Jane"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, created.ID, Patch{"status": "Bogus", "comments": "ignored"})
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = repo.Update(ctx, created.ID, Patch{"status": nil})
	assert.ErrorIs(t, err, ErrInvalidField)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusPending, got.Status)
	assert.Empty(t, got.Comments)

	employees := NewMemoryRepository(Employees, nil, nil)
	_, err = employees.Create(ctx, &domain.Employee{Meta: domain.Meta{CompanyID: "acme"}, Status: "retired"})
	assert.ErrorIs(t, err, ErrInvalidField)
	list, err := employees.List(ctx, Query{CompanyID: "acme"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPayrollDeriveRecomputesNetPay(t *testing.T) {
	base := decimal.NewFromInt(5000)
	tax := decimal.NewFromInt(1000)
	net := decimal.NewFromInt(4000)
	current := &domain.PayrollRecord{BaseSalary: &base, Tax: &tax, NetPay: &net}

	patch := Patch{"baseSalary": "6000"}
	require.NoError(t, PayrollRecords.Derive(current, patch))
	assert.Equal(t, "5000", patch["netPay"])

	cleared := Patch{"tax": nil}
	require.NoError(t, PayrollRecords.Derive(current, cleared))
	assert.Equal(t, "5000", cleared["netPay"])

	explicit := Patch{"tax": "10", "netPay": "123"}
	require.NoError(t, PayrollRecords.Derive(current, explicit))
	assert.Equal(t, "123", explicit["netPay"])

	unrelated := Patch{"currency": "EUR"}
	require.NoError(t, PayrollRecords.Derive(current, unrelated))
	assert.NotContains(t, unrelated, "netPay")
}

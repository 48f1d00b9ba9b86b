package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/events"
	"github.com/spec-kit/hris-service/internal/repository"
)

func newLeaveFixture(t *testing.T) (*LeaveService, *eventLog, *domain.LeaveRequest) {
	t.Helper()
	dispatcher := events.NewInMemoryDispatcher(nil)
	log := recordEvents(dispatcher, events.EventLeaveApproved, events.EventLeaveRejected)
	svc := NewLeaveService(LeaveDependencies{
		Requests:   memory(repository.LeaveRequests),
		Dispatcher: dispatcher,
		Clock:      fixedClock,
	})
	leave, err := svc.Create(context.Background(), "acme", &domain.LeaveRequest{
		EmployeeID:   "emp-1",
		EmployeeName: "Jane Doe",
		Type:         "Annual Leave",
		StartDate:    "2024-02-01",
		EndDate:      "2024-02-05",
		TotalDays:    5,
		Status:       domain.LeaveStatusApproved,
		Approver:     "self",
	})
	require.NoError(t, err)
	return svc, log, leave
}

func TestLeaveCreateAlwaysPending(t *testing.T) {
	_, _, leave := newLeaveFixture(t)

	assert.Equal(t, domain.LeaveStatusPending, leave.Status)
	assert.Empty(t, leave.Approver)
	assert.NotEmpty(t, leave.ID)
	assert.NotEmpty(t, leave.SubmittedDate)
	assert.False(t, leave.CreatedAt.IsZero())
}

func TestLeaveApprove(t *testing.T) {
	svc, log, leave := newLeaveFixture(t)

	approved, err := svc.Approve(context.Background(), "acme", leave.ID, "HR Manager")
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusApproved, approved.Status)
	assert.Equal(t, "HR Manager", approved.Approver)
	assert.Equal(t, "2024-01-20", approved.ApprovedDate)
	assert.Equal(t, 5.0, approved.TotalDays)

	published := log.all()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventLeaveApproved, published[0].Type)
	assert.Equal(t, "acme", published[0].CompanyID)
	assert.Equal(t, leave.ID, published[0].EntityID)
	payload := published[0].Payload.(events.LeaveDecisionPayload)
	assert.Equal(t, "emp-1", payload.EmployeeID)
	assert.Equal(t, "HR Manager", payload.Approver)
}

func TestLeaveApproveIsRepeatable(t *testing.T) {
	svc, _, leave := newLeaveFixture(t)
	ctx := context.Background()

	first, err := svc.Approve(ctx, "acme", leave.ID, "HR Manager")
	require.NoError(t, err)
	second, err := svc.Approve(ctx, "acme", leave.ID, "HR Manager")
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Approver, second.Approver)
	assert.Equal(t, first.ApprovedDate, second.ApprovedDate)
}

func TestLeaveReject(t *testing.T) {
	svc, log, leave := newLeaveFixture(t)

	rejected, err := svc.Reject(context.Background(), "acme", leave.ID, "HR Manager", " overlapping release ")
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusRejected, rejected.Status)
	assert.Equal(t, "2024-01-20", rejected.RejectedDate)
	assert.Equal(t, "overlapping release", rejected.RejectionReason)

	published := log.all()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventLeaveRejected, published[0].Type)
	assert.Equal(t, "overlapping release", published[0].Payload.(events.LeaveDecisionPayload).Reason)
}

func TestLeaveCancelAndUpdateStatus(t *testing.T) {
	svc, log, leave := newLeaveFixture(t)
	ctx := context.Background()

	cancelled, err := svc.Cancel(ctx, "acme", leave.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusCancelled, cancelled.Status)

	pending, err := svc.UpdateStatus(ctx, "acme", leave.ID, domain.LeaveStatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusPending, pending.Status)

	_, err = svc.UpdateStatus(ctx, "acme", leave.ID, "Archived")
	requireDomainCode(t, err, "VALIDATION_FAILED")
	assert.Empty(t, log.all())
}

func TestLeaveTransitionsOnMissingRecord(t *testing.T) {
	svc, log, leave := newLeaveFixture(t)
	ctx := context.Background()

	_, err := svc.Approve(ctx, "acme", "missing", "HR Manager")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.Reject(ctx, "globex", leave.ID, "HR Manager", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, log.all())
}

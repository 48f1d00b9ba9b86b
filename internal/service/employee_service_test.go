package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/events"
	"github.com/spec-kit/hris-service/internal/invite"
	"github.com/spec-kit/hris-service/internal/repository"
)

// newEmployeeFixture returns the service, its event log and the id of a stored company.
func newEmployeeFixture(t *testing.T) (*EmployeeService, *eventLog, string) {
	t.Helper()
	dispatcher := events.NewInMemoryDispatcher(nil)
	log := recordEvents(dispatcher, events.EventEmployeeInvited)
	companies := memory(repository.Companies)
	company, err := companies(context.Background()).Create(context.Background(), &domain.Company{Name: "Acme Corp"})
	require.NoError(t, err)

	svc := NewEmployeeService(EmployeeDependencies{
		Employees:  memory(repository.Employees),
		Companies:  companies,
		Tokens:     invite.NewTokenManager("test-secret", time.Hour),
		PortalURL:  "https://portal.acme.test",
		Dispatcher: dispatcher,
	})
	return svc, log, company.ID
}

func tokenFrom(t *testing.T, inviteURL string) string {
	t.Helper()
	u, err := url.Parse(inviteURL)
	require.NoError(t, err)
	return u.Query().Get("token")
}

func TestInviteCreatesEmployeeAndVerifies(t *testing.T) {
	svc, log, companyID := newEmployeeFixture(t)
	ctx := context.Background()

	invitation, err := svc.Invite(ctx, companyID, "HR Manager", InviteInput{
		Email:     " Jane@Acme.test ",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.test", invitation.Employee.Email)
	assert.NotEmpty(t, invitation.Employee.InvitedAt)
	assert.Contains(t, invitation.InviteURL, "https://portal.acme.test/accept-invitation?token=")

	published := log.all()
	require.Len(t, published, 1)
	payload := published[0].Payload.(events.EmployeeInvitedPayload)
	assert.Equal(t, "Acme Corp", payload.CompanyName)
	assert.Equal(t, "Jane Doe", payload.Name)
	assert.Equal(t, invitation.InviteURL, payload.InviteURL)

	employee, err := svc.VerifyInvitation(ctx, tokenFrom(t, invitation.InviteURL))
	require.NoError(t, err)
	assert.Equal(t, invitation.Employee.ID, employee.ID)
}

func TestInviteReusesExistingEmployee(t *testing.T) {
	svc, _, _ := newEmployeeFixture(t)
	ctx := context.Background()

	existing, err := svc.Create(ctx, "acme", &domain.Employee{FirstName: "Sam", Email: "sam@acme.test"})
	require.NoError(t, err)

	byEmail, err := svc.Invite(ctx, "acme", "HR Manager", InviteInput{Email: "sam@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, byEmail.Employee.ID)

	byID, err := svc.Invite(ctx, "acme", "HR Manager", InviteInput{EmployeeID: existing.ID})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, byID.Employee.ID)

	all, err := svc.List(ctx, "acme", ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestInviteValidation(t *testing.T) {
	svc, log, _ := newEmployeeFixture(t)
	ctx := context.Background()

	_, err := svc.Invite(ctx, "acme", "HR Manager", InviteInput{})
	requireDomainCode(t, err, "VALIDATION_FAILED")

	other, err := svc.Create(ctx, "globex", &domain.Employee{Email: "x@globex.test"})
	require.NoError(t, err)
	_, err = svc.Invite(ctx, "acme", "HR Manager", InviteInput{EmployeeID: other.ID})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, log.all())
}

func TestVerifyInvitationRejectsBadTokens(t *testing.T) {
	svc, _, _ := newEmployeeFixture(t)
	ctx := context.Background()

	_, err := svc.VerifyInvitation(ctx, "garbage")
	requireDomainCode(t, err, "UNAUTHORIZED")

	invitation, err := svc.Invite(ctx, "acme", "HR Manager", InviteInput{Email: "kim@acme.test"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, "acme", invitation.Employee.ID, repository.Patch{"email": "someone@else.test"})
	require.NoError(t, err)

	_, err = svc.VerifyInvitation(ctx, tokenFrom(t, invitation.InviteURL))
	requireDomainCode(t, err, "UNAUTHORIZED")
}

package service

import (
	"context"
	"strings"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/events"
	"github.com/spec-kit/hris-service/internal/repository"
)

// LeaveService manages leave requests and their review.
type LeaveService struct {
	*Records[*domain.LeaveRequest]
	dispatcher events.Dispatcher
	clock      Clock
}

// LeaveDependencies bundles what the leave service needs.
type LeaveDependencies struct {
	Requests   repository.Provider[*domain.LeaveRequest]
	Dispatcher events.Dispatcher
	Clock      Clock
}

// NewLeaveService constructs the service.
func NewLeaveService(deps LeaveDependencies) *LeaveService {
	return &LeaveService{
		Records:    NewRecords(repository.LeaveRequests, deps.Requests),
		dispatcher: deps.Dispatcher,
		clock:      deps.Clock,
	}
}

// Approve marks the request approved by actor. The current status is not checked.
func (s *LeaveService) Approve(ctx context.Context, companyID, id, actor string) (*domain.LeaveRequest, error) {
	updated, err := s.Update(ctx, companyID, id, repository.Patch{
		"status":       string(domain.LeaveStatusApproved),
		"approver":     actor,
		"approvedDate": s.clock.today(),
	})
	if err != nil {
		return nil, err
	}
	s.publishDecision(ctx, events.EventLeaveApproved, actor, updated)
	return updated, nil
}

// Reject marks the request rejected by actor with an optional reason.
func (s *LeaveService) Reject(ctx context.Context, companyID, id, actor, reason string) (*domain.LeaveRequest, error) {
	patch := repository.Patch{
		"status":       string(domain.LeaveStatusRejected),
		"approver":     actor,
		"rejectedDate": s.clock.today(),
	}
	if reason = strings.TrimSpace(reason); reason != "" {
		patch["rejectionReason"] = reason
	}
	updated, err := s.Update(ctx, companyID, id, patch)
	if err != nil {
		return nil, err
	}
	s.publishDecision(ctx, events.EventLeaveRejected, actor, updated)
	return updated, nil
}

// Cancel withdraws the request.
func (s *LeaveService) Cancel(ctx context.Context, companyID, id string) (*domain.LeaveRequest, error) {
	return s.Update(ctx, companyID, id, repository.Patch{"status": string(domain.LeaveStatusCancelled)})
}

// UpdateStatus sets the status without touching the decision fields.
func (s *LeaveService) UpdateStatus(ctx context.Context, companyID, id string, status domain.LeaveStatus) (*domain.LeaveRequest, error) {
	switch status {
	case domain.LeaveStatusPending, domain.LeaveStatusApproved, domain.LeaveStatusRejected, domain.LeaveStatusCancelled:
	default:
		return nil, invalidStatus("leave", string(status))
	}
	return s.Update(ctx, companyID, id, repository.Patch{"status": string(status)})
}

func (s *LeaveService) publishDecision(ctx context.Context, eventType events.EventType, actor string, leave *domain.LeaveRequest) {
	publishEvent(ctx, s.dispatcher, s.clock, events.Event{
		Type:      eventType,
		CompanyID: leave.CompanyID,
		EntityID:  leave.ID,
		Actor:     actor,
		Payload: events.LeaveDecisionPayload{
			EmployeeID:   leave.EmployeeID,
			EmployeeName: leave.EmployeeName,
			LeaveType:    leave.Type,
			StartDate:    leave.StartDate,
			EndDate:      leave.EndDate,
			Approver:     leave.Approver,
			Reason:       leave.RejectionReason,
		},
	})
}

package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeaveApproved      EventType = "leave_approved"
	EventLeaveRejected      EventType = "leave_rejected"
	EventEmployeeInvited    EventType = "employee_invited"
	EventInterviewScheduled EventType = "interview_scheduled"
	EventOfferExtended      EventType = "offer_extended"
	EventOfferAccepted      EventType = "offer_accepted"
	EventPayslipReady       EventType = "payslip_ready"
	EventPaymentFailed      EventType = "payment_failed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	CompanyID string    `json:"companyId"`
	EntityID  string    `json:"entityId"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// LeaveDecisionPayload accompanies leave_approved and leave_rejected.
type LeaveDecisionPayload struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	LeaveType    string `json:"leaveType"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Approver     string `json:"approver"`
	Reason       string `json:"reason,omitempty"`
}

// EmployeeInvitedPayload accompanies employee_invited.
type EmployeeInvitedPayload struct {
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	CompanyName string    `json:"companyName"`
	InviteURL   string    `json:"inviteUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// InterviewScheduledPayload accompanies interview_scheduled.
type InterviewScheduledPayload struct {
	CandidateName   string   `json:"candidateName"`
	CandidateEmail  string   `json:"candidateEmail"`
	JobTitle        string   `json:"jobTitle"`
	ScheduledAt     string   `json:"scheduledAt"`
	DurationMinutes int      `json:"durationMinutes"`
	Location        string   `json:"location,omitempty"`
	MeetingLink     string   `json:"meetingLink,omitempty"`
	Interviewers    []string `json:"interviewers,omitempty"`
}

// OfferPayload accompanies offer_extended and offer_accepted.
type OfferPayload struct {
	CandidateID    string `json:"candidateId"`
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	JobTitle       string `json:"jobTitle"`
	Salary         string `json:"salary,omitempty"`
	Currency       string `json:"currency,omitempty"`
	StartDate      string `json:"startDate,omitempty"`
	ExpiresDate    string `json:"expiresDate,omitempty"`
}

// PayrollPayload accompanies payslip_ready and payment_failed.
type PayrollPayload struct {
	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
	EmployeeEmail string `json:"employeeEmail,omitempty"`
	Period        string `json:"period"`
	NetPay        string `json:"netPay"`
	Currency      string `json:"currency,omitempty"`
	PayDate       string `json:"payDate,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

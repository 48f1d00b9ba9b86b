package dto

import "github.com/spec-kit/hris-service/internal/domain"

// CreateLeaveRequest payload. Status is not accepted: new requests always start pending.
type CreateLeaveRequest struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName" validate:"required"`
	Department   string  `json:"department"`
	Type         string  `json:"type" validate:"required"`
	StartDate    string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	TotalDays    float64 `json:"totalDays" validate:"omitempty,gt=0"`
	Reason       string  `json:"reason"`
	Comments     string  `json:"comments"`
}

// ToDomain converts the payload into a leave request record.
func (r CreateLeaveRequest) ToDomain() *domain.LeaveRequest {
	return &domain.LeaveRequest{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Department:   r.Department,
		Type:         r.Type,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		TotalDays:    r.TotalDays,
		Reason:       r.Reason,
		Comments:     r.Comments,
	}
}

// LeaveDecisionRequest carries who approved or rejected a request.
type LeaveDecisionRequest struct {
	Approver string `json:"approver" validate:"required"`
	Reason   string `json:"reason"`
}

// StatusRequest sets a record status. Allowed values are checked by the service.
type StatusRequest struct {
	Status   string `json:"status" validate:"required"`
	Reason   string `json:"reason"`
	Feedback string `json:"feedback"`
}

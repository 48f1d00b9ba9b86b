package domain

// LeaveStatus enumerates leave request lifecycle states.
type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "Pending"
	LeaveStatusApproved  LeaveStatus = "Approved"
	LeaveStatusRejected  LeaveStatus = "Rejected"
	LeaveStatusCancelled LeaveStatus = "Cancelled"
)

// LeaveRequest is an employee's request for time off.
// EmployeeName and Department are copied from the employee at submission time.
type LeaveRequest struct {
	Meta
	EmployeeID      string      `json:"employeeId,omitempty"`
	EmployeeName    string      `json:"employeeName,omitempty"`
	Department      string      `json:"department,omitempty"`
	Type            string      `json:"type,omitempty"`
	StartDate       string      `json:"startDate,omitempty"`
	EndDate         string      `json:"endDate,omitempty"`
	TotalDays       float64     `json:"totalDays,omitempty"`
	Reason          string      `json:"reason,omitempty"`
	Status          LeaveStatus `json:"status,omitempty"`
	SubmittedDate   string      `json:"submittedDate,omitempty"`
	Approver        string      `json:"approver,omitempty"`
	ApprovedDate    string      `json:"approvedDate,omitempty"`
	RejectedDate    string      `json:"rejectedDate,omitempty"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
	Comments        string      `json:"comments,omitempty"`
}

// LeaveType is an entry of the leave catalog shared by all tenants.
type LeaveType struct {
	Meta
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	DaysAllowed int    `json:"daysAllowed,omitempty"`
	Paid        *bool  `json:"paid,omitempty"`
	Color       string `json:"color,omitempty"`
}

package domain

import "github.com/shopspring/decimal"

// EmployeeStatus enumerates employment states.
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusOnLeave    EmployeeStatus = "on_leave"
	EmployeeStatusInactive   EmployeeStatus = "inactive"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

// Employee is a person employed by a company.
type Employee struct {
	Meta
	FirstName      string           `json:"firstName,omitempty"`
	LastName       string           `json:"lastName,omitempty"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Department     string           `json:"department,omitempty"`
	Position       string           `json:"position,omitempty"`
	ManagerID      string           `json:"managerId,omitempty"`
	EmploymentType string           `json:"employmentType,omitempty"`
	StartDate      string           `json:"startDate,omitempty"`
	Salary         *decimal.Decimal `json:"salary,omitempty"`
	Status         EmployeeStatus   `json:"status,omitempty"`
	InvitedAt      string           `json:"invitedAt,omitempty"`
}

// DisplayName joins first and last name.
func (e *Employee) DisplayName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}

package dto

// InviteEmployeeRequest payload. Either EmployeeID or Email identifies the invitee.
type InviteEmployeeRequest struct {
	EmployeeID string `json:"employeeId" validate:"required_without=Email"`
	Email      string `json:"email" validate:"required_without=EmployeeID,omitempty,email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
	Position   string `json:"position"`
	InvitedBy  string `json:"invitedBy"`
}

// VerifyInvitationRequest payload.
type VerifyInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

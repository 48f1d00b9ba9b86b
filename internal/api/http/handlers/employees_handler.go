package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hris-service/internal/api/dto"
	"github.com/spec-kit/hris-service/internal/service"
)

// EmployeesHandler manages invitations to the self-service portal.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// Invite POST /api/employees/invite.
func (h *EmployeesHandler) Invite(c *fiber.Ctx) error {
	var req dto.InviteEmployeeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	invitation, err := h.service.Invite(c.UserContext(), CompanyFromContext(c), req.InvitedBy, service.InviteInput{
		EmployeeID: req.EmployeeID,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": invitation})
}

// VerifyInvitation POST /portal/invitations/verify.
func (h *EmployeesHandler) VerifyInvitation(c *fiber.Ctx) error {
	var req dto.VerifyInvitationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	employee, err := h.service.VerifyInvitation(c.UserContext(), req.Token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employee})
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/events"
	"github.com/spec-kit/hris-service/internal/invite"
	"github.com/spec-kit/hris-service/internal/repository"
	apperrors "github.com/spec-kit/hris-service/pkg/util"
)

// EmployeeService manages employee records and portal invitations.
type EmployeeService struct {
	*Records[*domain.Employee]
	companies  *Records[*domain.Company]
	tokens     *invite.TokenManager
	portalURL  string
	dispatcher events.Dispatcher
	clock      Clock
}

// EmployeeDependencies bundles what the employee service needs.
type EmployeeDependencies struct {
	Employees  repository.Provider[*domain.Employee]
	Companies  repository.Provider[*domain.Company]
	Tokens     *invite.TokenManager
	PortalURL  string
	Dispatcher events.Dispatcher
	Clock      Clock
}

// InviteInput identifies the person to invite. When EmployeeID is empty the employee is
// looked up by e-mail and created if missing.
type InviteInput struct {
	EmployeeID string
	Email      string
	FirstName  string
	LastName   string
	Department string
	Position   string
}

// Invitation is the outcome of an invite.
type Invitation struct {
	Employee  *domain.Employee `json:"employee"`
	InviteURL string           `json:"inviteUrl"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		Records:    NewRecords(repository.Employees, deps.Employees),
		companies:  NewRecords(repository.Companies, deps.Companies),
		tokens:     deps.Tokens,
		portalURL:  deps.PortalURL,
		dispatcher: deps.Dispatcher,
		clock:      deps.Clock,
	}
}

// Invite issues a portal invitation link for the employee and announces it.
func (s *EmployeeService) Invite(ctx context.Context, companyID, actor string, input InviteInput) (*Invitation, error) {
	employee, err := s.inviteTarget(ctx, companyID, input)
	if err != nil {
		return nil, err
	}
	if employee.Email == "" {
		return nil, apperrors.NewValidationError("employee has no e-mail address", map[string]any{"email": "required"})
	}

	token, expiresAt, err := s.tokens.Issue(companyID, employee.ID, employee.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	employee, err = s.Update(ctx, companyID, employee.ID, repository.Patch{"invitedAt": s.clock.now().UTC().Format(time.RFC3339)})
	if err != nil {
		return nil, err
	}

	inviteURL := invite.Link(s.portalURL, token)
	publishEvent(ctx, s.dispatcher, s.clock, events.Event{
		Type:      events.EventEmployeeInvited,
		CompanyID: companyID,
		EntityID:  employee.ID,
		Actor:     actor,
		Payload: events.EmployeeInvitedPayload{
			Email:       employee.Email,
			Name:        employee.DisplayName(),
			CompanyName: s.companyName(ctx, companyID),
			InviteURL:   inviteURL,
			ExpiresAt:   expiresAt,
		},
	})
	return &Invitation{Employee: employee, InviteURL: inviteURL, ExpiresAt: expiresAt}, nil
}

func (s *EmployeeService) inviteTarget(ctx context.Context, companyID string, input InviteInput) (*domain.Employee, error) {
	if input.EmployeeID != "" {
		return s.Get(ctx, companyID, input.EmployeeID)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.NewValidationError("email or employeeId is required", map[string]any{"email": "required"})
	}
	existing, err := s.List(ctx, companyID, ListOptions{Where: map[string]string{"email": email}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing[0], nil
	}
	return s.Create(ctx, companyID, &domain.Employee{
		Email:      email,
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Department: input.Department,
		Position:   input.Position,
	})
}

func (s *EmployeeService) companyName(ctx context.Context, companyID string) string {
	company, err := s.companies.Get(ctx, companyID, companyID)
	if err != nil {
		return ""
	}
	return company.Name
}

// VerifyInvitation resolves an invitation token to the invited employee.
func (s *EmployeeService) VerifyInvitation(ctx context.Context, token string) (*domain.Employee, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, invite.ErrExpiredToken) {
			return nil, apperrors.NewUnauthorized("invitation expired")
		}
		return nil, apperrors.NewUnauthorized("invalid invitation")
	}
	employee, err := s.Get(ctx, claims.CompanyID, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("invalid invitation")
		}
		return nil, err
	}
	if !strings.EqualFold(employee.Email, claims.Email) {
		return nil, apperrors.NewUnauthorized("invalid invitation")
	}
	return employee, nil
}

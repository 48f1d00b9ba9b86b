package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/hris-service/internal/config"
	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/events"
	"github.com/spec-kit/hris-service/internal/mail"
	"github.com/spec-kit/hris-service/internal/observability"
	"github.com/spec-kit/hris-service/internal/repository"
	apperrors "github.com/spec-kit/hris-service/pkg/util"
)

// NotificationService turns domain events into e-mails and in-app notifications.
type NotificationService struct {
	*Records[*domain.Notification]
	employees  *Records[*domain.Employee]
	sender     mail.Sender
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	cfg        config.MailConfig
	clock      Clock
}

// NotificationDependencies bundles what the notification service needs.
type NotificationDependencies struct {
	Notifications repository.Provider[*domain.Notification]
	Employees     repository.Provider[*domain.Employee]
	Sender        mail.Sender
	Dispatcher    events.Dispatcher
	Metrics       *observability.Metrics
	Logger        *zap.Logger
	Config        config.MailConfig
	Clock         Clock
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sender := deps.Sender
	if sender == nil {
		sender = mail.NewLogSender(logger)
	}
	return &NotificationService{
		Records:    NewRecords(repository.Notifications, deps.Notifications),
		employees:  NewRecords(repository.Employees, deps.Employees),
		sender:     sender,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		cfg:        deps.Config,
		clock:      deps.Clock,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventLeaveApproved, n.handleLeaveDecision)
	n.dispatcher.Subscribe(events.EventLeaveRejected, n.handleLeaveDecision)
	n.dispatcher.Subscribe(events.EventEmployeeInvited, n.handleEmployeeInvited)
	n.dispatcher.Subscribe(events.EventInterviewScheduled, n.handleInterviewScheduled)
	n.dispatcher.Subscribe(events.EventOfferExtended, n.handleOfferExtended)
	n.dispatcher.Subscribe(events.EventOfferAccepted, n.handleOfferAccepted)
	n.dispatcher.Subscribe(events.EventPayslipReady, n.handlePayroll)
	n.dispatcher.Subscribe(events.EventPaymentFailed, n.handlePayroll)
}

// outgoing is one notification to deliver.
type outgoing struct {
	recipientID string
	email       string
	template    mail.Template
	data        mail.Data
	title       string
	message     string
	link        string
}

func (n *NotificationService) handleLeaveDecision(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.LeaveDecisionPayload)
	if !ok {
		return unexpectedPayload(event)
	}
	n.logger.Info("LeaveDecision", zap.String("type", string(event.Type)), zap.String("leave_id", event.EntityID))

	tmpl, verb := mail.TemplateLeaveApproved, "approved"
	if event.Type == events.EventLeaveRejected {
		tmpl, verb = mail.TemplateLeaveRejected, "rejected"
	}
	email := ""
	if payload.EmployeeID != "" {
		if employee, err := n.employees.Get(ctx, event.CompanyID, payload.EmployeeID); err == nil {
			email = employee.Email
		} else {
			n.logger.Warn("leave decision recipient lookup failed", zap.String("employee_id", payload.EmployeeID), zap.Error(err))
		}
	}
	return n.deliver(ctx, event.CompanyID, outgoing{
		recipientID: payload.EmployeeID,
		email:       email,
		template:    tmpl,
		data: mail.Data{
			"Name":      payload.EmployeeName,
			"LeaveType": payload.LeaveType,
			"StartDate": payload.StartDate,
			"EndDate":   payload.EndDate,
			"Approver":  payload.Approver,
			"Reason":    payload.Reason,
		},
		title:   fmt.Sprintf("Leave request %s", verb),
		message: fmt.Sprintf("Your %s request from %s to %s was %s by %s.", payload.LeaveType, payload.StartDate, payload.EndDate, verb, payload.Approver),
		link:    n.cfg.PortalURL,
	})
}

func (n *NotificationService) handleEmployeeInvited(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.EmployeeInvitedPayload)
	if !ok {
		return unexpectedPayload(event)
	}
	n.logger.Info("EmployeeInvited", zap.String("employee_id", event.EntityID))
	return n.deliver(ctx, event.CompanyID, outgoing{
		recipientID: event.EntityID,
		email:       payload.Email,
		template:    mail.TemplateInvitation,
		data: mail.Data{
			"Name":        payload.Name,
			"CompanyName": payload.CompanyName,
			"InviteURL":   payload.InviteURL,
			"ExpiresAt":   payload.ExpiresAt.Format("January 2, 2006"),
		},
		title:   "Invitation sent",
		message: fmt.Sprintf("An invitation to the employee portal was sent to %s.", payload.Email),
		link:    payload.InviteURL,
	})
}

func (n *NotificationService) handleInterviewScheduled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.InterviewScheduledPayload)
	if !ok {
		return unexpectedPayload(event)
	}
	n.logger.Info("InterviewScheduled", zap.String("interview_id", event.EntityID))
	duration := ""
	if payload.DurationMinutes > 0 {
		duration = strconv.Itoa(payload.DurationMinutes)
	}
	return n.deliver(ctx, event.CompanyID, outgoing{
		email:    payload.CandidateEmail,
		template: mail.TemplateInterviewInvitation,
		data: mail.Data{
			"Name":        payload.CandidateName,
			"JobTitle":    payload.JobTitle,
			"When":        payload.ScheduledAt,
			"Duration":    duration,
			"Location":    payload.Location,
			"MeetingLink": payload.MeetingLink,
		},
		title:   "Interview scheduled",
		message: fmt.Sprintf("Interview with %s for %s on %s.", payload.CandidateName, payload.JobTitle, payload.ScheduledAt),
		link:    payload.MeetingLink,
	})
}

func (n *NotificationService) handleOfferExtended(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OfferPayload)
	if !ok {
		return unexpectedPayload(event)
	}
	n.logger.Info("OfferExtended", zap.String("offer_id", event.EntityID))
	return n.deliver(ctx, event.CompanyID, outgoing{
		email:    payload.CandidateEmail,
		template: mail.TemplateJobOffer,
		data: mail.Data{
			"Name":        payload.CandidateName,
			"JobTitle":    payload.JobTitle,
			"Salary":      payload.Salary,
			"Currency":    payload.Currency,
			"StartDate":   payload.StartDate,
			"ExpiresDate": payload.ExpiresDate,
			"OfferURL":    n.cfg.CareersURL,
		},
		title:   "Offer extended",
		message: fmt.Sprintf("An offer for %s was sent to %s.", payload.JobTitle, payload.CandidateName),
	})
}

func (n *NotificationService) handleOfferAccepted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OfferPayload)
	if !ok {
		return unexpectedPayload(event)
	}
	n.logger.Info("OfferAccepted", zap.String("offer_id", event.EntityID))
	return n.deliver(ctx, event.CompanyID, outgoing{
		email:    payload.CandidateEmail,
		template: mail.TemplateFirstDayInstructions,
		data: mail.Data{
			"Name":      payload.CandidateName,
			"StartDate": payload.StartDate,
		},
		title:   "Offer accepted",
		message: fmt.Sprintf("%s accepted the offer for %s.", payload.CandidateName, payload.JobTitle),
	})
}

func (n *NotificationService) handlePayroll(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PayrollPayload)
	if !ok {
		return unexpectedPayload(event)
	}
	n.logger.Info("PayrollStatus", zap.String("type", string(event.Type)), zap.String("payroll_id", event.EntityID))

	out := outgoing{
		recipientID: payload.EmployeeID,
		email:       payload.EmployeeEmail,
		data: mail.Data{
			"Name":      payload.EmployeeName,
			"Period":    payload.Period,
			"NetPay":    payload.NetPay,
			"Currency":  payload.Currency,
			"PayDate":   payload.PayDate,
			"Reason":    payload.Reason,
			"PortalURL": n.cfg.PortalURL,
		},
		link: n.cfg.PortalURL,
	}
	if event.Type == events.EventPaymentFailed {
		out.template = mail.TemplatePaymentFailed
		out.title = "Payment failed"
		out.message = fmt.Sprintf("Payment for %s could not be processed.", payload.Period)
	} else {
		out.template = mail.TemplatePayslipReady
		out.title = "Payslip ready"
		out.message = fmt.Sprintf("Your payslip for %s is ready.", payload.Period)
	}
	if out.email == "" && payload.EmployeeID != "" {
		if employee, err := n.employees.Get(ctx, event.CompanyID, payload.EmployeeID); err == nil {
			out.email = employee.Email
		}
	}
	return n.deliver(ctx, event.CompanyID, out)
}

// deliver sends the e-mail when an address is known and records the in-app notification.
func (n *NotificationService) deliver(ctx context.Context, companyID string, out outgoing) error {
	sent := false
	if out.email != "" {
		var err error
		sent, err = n.send(ctx, out.email, out.template, out.data)
		if err != nil {
			return err
		}
	}
	_, err := n.Create(ctx, companyID, &domain.Notification{
		RecipientID:    out.recipientID,
		RecipientEmail: out.email,
		Type:           string(out.template),
		Title:          out.title,
		Message:        out.message,
		Link:           out.link,
		EmailSent:      &sent,
	})
	return err
}

func (n *NotificationService) send(ctx context.Context, to string, tmpl mail.Template, data mail.Data) (bool, error) {
	msg, err := mail.Render(tmpl, data)
	if err != nil {
		return false, err
	}
	sent := n.sender.Send(ctx, to, msg)
	n.metrics.RecordEmail(string(tmpl), sent)
	return sent, nil
}

// SendTemplate renders and sends an ad hoc e-mail. The result reports whether the provider
// accepted it.
func (n *NotificationService) SendTemplate(ctx context.Context, to string, tmpl mail.Template, data mail.Data) (bool, error) {
	if !mail.Known(tmpl) {
		return false, apperrors.NewValidationError("unknown email template", map[string]any{"template": string(tmpl)})
	}
	if strings.TrimSpace(to) == "" {
		return false, apperrors.NewValidationError("recipient is required", map[string]any{"to": "required"})
	}
	return n.send(ctx, to, tmpl, data)
}

// MarkRead flags a notification as read.
func (n *NotificationService) MarkRead(ctx context.Context, companyID, id string) (*domain.Notification, error) {
	return n.Update(ctx, companyID, id, repository.Patch{
		"status":   string(domain.NotificationStatusRead),
		"readDate": n.clock.today(),
	})
}

func unexpectedPayload(event events.Event) error {
	return fmt.Errorf("event %s: unexpected payload %T", event.Type, event.Payload)
}

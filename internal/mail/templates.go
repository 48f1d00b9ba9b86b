// Package mail renders transactional e-mails and hands them to a provider.
package mail

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// Template names one of the transactional e-mails.
type Template string

const (
	TemplateInvitation           Template = "invitation"
	TemplatePasswordReset        Template = "password_reset"
	TemplateLeaveApproved        Template = "leave_approved"
	TemplateLeaveRejected        Template = "leave_rejected"
	TemplateMeetingScheduled     Template = "meeting_scheduled"
	TemplateInterviewInvitation  Template = "interview_invitation"
	TemplatePayslipReady         Template = "payslip_ready"
	TemplatePaymentFailed        Template = "payment_failed"
	TemplatePolicyNotice         Template = "policy_notice"
	TemplateAccountLocked        Template = "account_locked"
	TemplateJobOffer             Template = "job_offer"
	TemplateFirstDayInstructions Template = "first_day_instructions"
)

// Data fills template placeholders. Missing keys render empty.
type Data map[string]string

// Message is a rendered e-mail.
type Message struct {
	Subject string
	HTML    string
}

type definition struct {
	subject string
	body    string
}

var definitions = map[Template]definition{
	TemplateInvitation: {
		subject: "You're invited to join {{.CompanyName}}",
		body: `<h2>Welcome, {{.Name}}!</h2>
<p>{{.CompanyName}} has invited you to the employee self-service portal.</p>
<p><a class="button" href="{{.InviteURL}}">Accept invitation</a></p>
<p>This link expires on {{.ExpiresAt}}.</p>`,
	},
	TemplatePasswordReset: {
		subject: "Reset your password",
		body: `<h2>Hi {{.Name}},</h2>
<p>We received a request to reset your password.</p>
<p><a class="button" href="{{.ResetURL}}">Choose a new password</a></p>
<p>The link is valid for {{.ExpiresIn}}. If you did not ask for a reset you can ignore this e-mail.</p>`,
	},
	TemplateLeaveApproved: {
		subject: "Your {{.LeaveType}} request was approved",
		body: `<h2>Hi {{.Name}},</h2>
<p>Your {{.LeaveType}} request from <strong>{{.StartDate}}</strong> to <strong>{{.EndDate}}</strong> was approved by {{.Approver}}.</p>
<p>Enjoy your time off.</p>`,
	},
	TemplateLeaveRejected: {
		subject: "Your {{.LeaveType}} request was not approved",
		body: `<h2>Hi {{.Name}},</h2>
<p>Your {{.LeaveType}} request from <strong>{{.StartDate}}</strong> to <strong>{{.EndDate}}</strong> was declined by {{.Approver}}.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
<p>Please contact HR if you have questions.</p>`,
	},
	TemplateMeetingScheduled: {
		subject: "Meeting scheduled: {{.Title}}",
		body: `<h2>Hi {{.Name}},</h2>
<p>{{.Organizer}} scheduled <strong>{{.Title}}</strong> for {{.When}}.</p>
{{if .Location}}<p>Location: {{.Location}}</p>{{end}}
{{if .MeetingLink}}<p><a class="button" href="{{.MeetingLink}}">Join meeting</a></p>{{end}}`,
	},
	TemplateInterviewInvitation: {
		subject: "Interview invitation: {{.JobTitle}}",
		body: `<h2>Hi {{.Name}},</h2>
<p>Thank you for applying for <strong>{{.JobTitle}}</strong>{{if .CompanyName}} at {{.CompanyName}}{{end}}.</p>
<p>Your interview is scheduled for {{.When}}{{if .Duration}} and will take about {{.Duration}} minutes{{end}}.</p>
{{if .Location}}<p>Location: {{.Location}}</p>{{end}}
{{if .MeetingLink}}<p><a class="button" href="{{.MeetingLink}}">Join interview</a></p>{{end}}`,
	},
	TemplatePayslipReady: {
		subject: "Your payslip for {{.Period}} is ready",
		body: `<h2>Hi {{.Name}},</h2>
<p>Your payslip for {{.Period}} is available. Net pay: <strong>{{.NetPay}} {{.Currency}}</strong>{{if .PayDate}}, paid on {{.PayDate}}{{end}}.</p>
<p><a class="button" href="{{.PortalURL}}">View payslip</a></p>`,
	},
	TemplatePaymentFailed: {
		subject: "Payment issue for {{.Period}}",
		body: `<h2>Hi {{.Name}},</h2>
<p>We could not process your payment for {{.Period}}.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
<p>Please check your bank details in the <a href="{{.PortalURL}}">employee portal</a>.</p>`,
	},
	TemplatePolicyNotice: {
		subject: "Policy update: {{.PolicyTitle}}",
		body: `<h2>Hi {{.Name}},</h2>
<p>The policy <strong>{{.PolicyTitle}}</strong> takes effect on {{.EffectiveDate}}.</p>
<p>{{.Summary}}</p>
{{if .PolicyURL}}<p><a class="button" href="{{.PolicyURL}}">Read the policy</a></p>{{end}}`,
	},
	TemplateAccountLocked: {
		subject: "Your account has been locked",
		body: `<h2>Hi {{.Name}},</h2>
<p>Your account was locked on {{.LockedAt}}{{if .Reason}} because {{.Reason}}{{end}}.</p>
{{if .UnlockURL}}<p><a class="button" href="{{.UnlockURL}}">Unlock account</a></p>{{end}}
<p>Contact your administrator if this was unexpected.</p>`,
	},
	TemplateJobOffer: {
		subject: "Job offer: {{.JobTitle}}",
		body: `<h2>Congratulations, {{.Name}}!</h2>
<p>We are pleased to offer you the position of <strong>{{.JobTitle}}</strong>{{if .CompanyName}} at {{.CompanyName}}{{end}}.</p>
{{if .Salary}}<p>Salary: {{.Salary}} {{.Currency}}</p>{{end}}
{{if .StartDate}}<p>Proposed start date: {{.StartDate}}</p>{{end}}
{{if .ExpiresDate}}<p>Please respond by {{.ExpiresDate}}.</p>{{end}}
{{if .OfferURL}}<p><a class="button" href="{{.OfferURL}}">Review offer</a></p>{{end}}`,
	},
	TemplateFirstDayInstructions: {
		subject: "Your first day{{if .CompanyName}} at {{.CompanyName}}{{end}}",
		body: `<h2>Welcome aboard, {{.Name}}!</h2>
<p>Your first day is <strong>{{.StartDate}}</strong>{{if .StartTime}} at {{.StartTime}}{{end}}.</p>
{{if .Location}}<p>Please report to {{.Location}}.</p>{{end}}
{{if .Contact}}<p>Ask for {{.Contact}} when you arrive.</p>{{end}}
{{if .Notes}}<p>{{.Notes}}</p>{{end}}`,
	},
}

const layout = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
body{font-family:Arial,sans-serif;color:#1f2937;line-height:1.5}
.container{max-width:600px;margin:0 auto;padding:24px}
.button{display:inline-block;padding:10px 18px;background:#2563eb;color:#fff;text-decoration:none;border-radius:6px}
.footer{margin-top:32px;font-size:12px;color:#6b7280}
</style></head><body><div class="container">
{{template "content" .}}
<p class="footer">This is an automated message from the HR team. Please do not reply.</p>
</div></body></html>`

type compiled struct {
	subject *texttemplate.Template
	body    *htmltemplate.Template
}

var registry = mustCompile()

func mustCompile() map[Template]compiled {
	out := make(map[Template]compiled, len(definitions))
	for name, def := range definitions {
		subject := texttemplate.Must(texttemplate.New(string(name)).Option("missingkey=zero").Parse(def.subject))
		body := htmltemplate.Must(htmltemplate.New("layout").Option("missingkey=zero").Parse(layout))
		htmltemplate.Must(body.New("content").Parse(def.body))
		out[name] = compiled{subject: subject, body: body}
	}
	return out
}

// Templates lists every known template name.
func Templates() []Template {
	out := make([]Template, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// Known reports whether name is a registered template.
func Known(name Template) bool {
	_, ok := registry[name]
	return ok
}

// Render produces the subject and HTML body for a template.
func Render(name Template, data Data) (Message, error) {
	tpl, ok := registry[name]
	if !ok {
		return Message{}, fmt.Errorf("unknown mail template %q", name)
	}
	if data == nil {
		data = Data{}
	}

	var subject strings.Builder
	if err := tpl.subject.Execute(&subject, data); err != nil {
		return Message{}, fmt.Errorf("render %s subject: %w", name, err)
	}
	var body bytes.Buffer
	if err := tpl.body.ExecuteTemplate(&body, "layout", data); err != nil {
		return Message{}, fmt.Errorf("render %s body: %w", name, err)
	}
	return Message{Subject: strings.TrimSpace(subject.String()), HTML: body.String()}, nil
}

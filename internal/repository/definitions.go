package repository

import (
	"time"

	"github.com/spec-kit/hris-service/internal/domain"
)

// Collection definitions for every entity the platform stores.
var (
	Companies = Definition[*domain.Company]{
		Collection: "companies",
		New:        func() *domain.Company { return &domain.Company{} },
		Statuses:   statuses(domain.CompanyStatusActive, domain.CompanyStatusInactive),
		Prepare: func(c *domain.Company) {
			if c.Status == "" {
				c.Status = domain.CompanyStatusActive
			}
		},
	}

	Employees = Definition[*domain.Employee]{
		Collection:   "employees",
		TenantScoped: true,
		New:          func() *domain.Employee { return &domain.Employee{} },
		Statuses: statuses(domain.EmployeeStatusActive, domain.EmployeeStatusOnLeave,
			domain.EmployeeStatusInactive, domain.EmployeeStatusTerminated),
		Prepare: func(e *domain.Employee) {
			if e.Status == "" {
				e.Status = domain.EmployeeStatusActive
			}
		},
	}

	LeaveTypes = Definition[*domain.LeaveType]{
		Collection: "leave_types",
		Ascending:  true,
		New:        func() *domain.LeaveType { return &domain.LeaveType{} },
		Seed:       DefaultLeaveTypes,
	}

	LeaveRequests = Definition[*domain.LeaveRequest]{
		Collection:   "leave_requests",
		TenantScoped: true,
		New:          func() *domain.LeaveRequest { return &domain.LeaveRequest{} },
		Statuses: statuses(domain.LeaveStatusPending, domain.LeaveStatusApproved,
			domain.LeaveStatusRejected, domain.LeaveStatusCancelled),
		Prepare: func(l *domain.LeaveRequest) {
			// New requests always await review, whatever the caller sent.
			l.Status = domain.LeaveStatusPending
			l.Approver, l.ApprovedDate, l.RejectedDate, l.RejectionReason = "", "", "", ""
			if l.SubmittedDate == "" {
				l.SubmittedDate = domain.Today(time.Now())
			}
		},
	}

	JobPostings = Definition[*domain.JobPosting]{
		Collection:   "job_postings",
		TenantScoped: true,
		New:          func() *domain.JobPosting { return &domain.JobPosting{} },
		Statuses:     statuses(domain.JobPostingStatusDraft, domain.JobPostingStatusPublished, domain.JobPostingStatusClosed),
		Prepare: func(j *domain.JobPosting) {
			if j.Status == "" {
				j.Status = domain.JobPostingStatusDraft
			}
		},
	}

	Candidates = Definition[*domain.Candidate]{
		Collection:   "recruitment_candidates",
		TenantScoped: true,
		New:          func() *domain.Candidate { return &domain.Candidate{} },
		Statuses: statuses(domain.CandidateStatusNew, domain.CandidateStatusScreening, domain.CandidateStatusInterviewing,
			domain.CandidateStatusOffer, domain.CandidateStatusHired, domain.CandidateStatusRejected),
		Prepare: func(c *domain.Candidate) {
			if c.Status == "" {
				c.Status = domain.CandidateStatusNew
			}
			if c.AppliedDate == "" {
				c.AppliedDate = domain.Today(time.Now())
			}
		},
	}

	Interviews = Definition[*domain.Interview]{
		Collection:   "interviews",
		TenantScoped: true,
		New:          func() *domain.Interview { return &domain.Interview{} },
		Statuses:     statuses(domain.InterviewStatusScheduled, domain.InterviewStatusCompleted, domain.InterviewStatusCancelled),
		Prepare: func(i *domain.Interview) {
			if i.Status == "" {
				i.Status = domain.InterviewStatusScheduled
			}
		},
	}

	Offers = Definition[*domain.Offer]{
		Collection:   "offers",
		TenantScoped: true,
		New:          func() *domain.Offer { return &domain.Offer{} },
		Statuses: statuses(domain.OfferStatusPending, domain.OfferStatusAccepted,
			domain.OfferStatusDeclined, domain.OfferStatusWithdrawn),
		Prepare: func(o *domain.Offer) {
			if o.Status == "" {
				o.Status = domain.OfferStatusPending
			}
		},
	}

	PayrollRecords = Definition[*domain.PayrollRecord]{
		Collection:   "payroll_records",
		TenantScoped: true,
		New:          func() *domain.PayrollRecord { return &domain.PayrollRecord{} },
		Statuses: statuses(domain.PayrollStatusDraft, domain.PayrollStatusProcessed,
			domain.PayrollStatusPaid, domain.PayrollStatusFailed),
		Derive: derivePayroll,
		Prepare: func(p *domain.PayrollRecord) {
			if p.Status == "" {
				p.Status = domain.PayrollStatusDraft
			}
			if p.NetPay == nil {
				net := p.ComputeNetPay()
				p.NetPay = &net
			}
		},
	}

	Documents = Definition[*domain.DocumentFile]{
		Collection:   "documents",
		TenantScoped: true,
		New:          func() *domain.DocumentFile { return &domain.DocumentFile{} },
		Statuses:     statuses(domain.DocumentStatusActive, domain.DocumentStatusArchived),
		Prepare: func(d *domain.DocumentFile) {
			if d.Status == "" {
				d.Status = domain.DocumentStatusActive
			}
		},
	}

	Notifications = Definition[*domain.Notification]{
		Collection:   "notifications",
		TenantScoped: true,
		New:          func() *domain.Notification { return &domain.Notification{} },
		Statuses:     statuses(domain.NotificationStatusUnread, domain.NotificationStatusRead),
		Prepare: func(n *domain.Notification) {
			if n.Status == "" {
				n.Status = domain.NotificationStatusUnread
			}
		},
	}
)

func statuses[S ~string](values ...S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// derivePayroll keeps netPay in step with its inputs unless the patch sets it explicitly.
func derivePayroll(current *domain.PayrollRecord, patch Patch) error {
	if patch.Touches("netPay") || !patch.Touches("baseSalary", "allowances", "deductions", "tax") {
		return nil
	}
	merged, err := applyPatch(func() *domain.PayrollRecord { return &domain.PayrollRecord{} }, current, patch)
	if err != nil {
		return err
	}
	patch["netPay"] = merged.ComputeNetPay().String()
	return nil
}

// DefaultLeaveTypes is the catalog every fresh in-memory store starts with.
// The live store gets the same rows from the seed migration.
func DefaultLeaveTypes() []*domain.LeaveType {
	paid := func() *bool { v := true; return &v }
	return []*domain.LeaveType{
		{Name: "Annual Leave", Description: "Paid time off for vacation", DaysAllowed: 20, Paid: paid(), Color: "#3b82f6"},
		{Name: "Sick Leave", Description: "Time off for illness or medical appointments", DaysAllowed: 10, Paid: paid(), Color: "#ef4444"},
		{Name: "Personal Leave", Description: "Time off for personal matters", DaysAllowed: 5, Paid: paid(), Color: "#10b981"},
	}
}

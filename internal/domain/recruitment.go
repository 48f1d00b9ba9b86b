package domain

import "github.com/shopspring/decimal"

// JobPostingStatus enumerates posting states.
type JobPostingStatus string

const (
	JobPostingStatusDraft     JobPostingStatus = "draft"
	JobPostingStatusPublished JobPostingStatus = "published"
	JobPostingStatusClosed    JobPostingStatus = "closed"
)

// JobPosting is an opening advertised on the careers site once published.
type JobPosting struct {
	Meta
	Title          string           `json:"title,omitempty"`
	Department     string           `json:"department,omitempty"`
	Location       string           `json:"location,omitempty"`
	EmploymentType string           `json:"employmentType,omitempty"`
	Description    string           `json:"description,omitempty"`
	Requirements   []string         `json:"requirements,omitempty"`
	SalaryMin      *decimal.Decimal `json:"salaryMin,omitempty"`
	SalaryMax      *decimal.Decimal `json:"salaryMax,omitempty"`
	Status         JobPostingStatus `json:"status,omitempty"`
	PublishedDate  string           `json:"publishedDate,omitempty"`
	ClosedDate     string           `json:"closedDate,omitempty"`
}

// CandidateStatus enumerates recruitment pipeline stages.
type CandidateStatus string

const (
	CandidateStatusNew          CandidateStatus = "new"
	CandidateStatusScreening    CandidateStatus = "screening"
	CandidateStatusInterviewing CandidateStatus = "interviewing"
	CandidateStatusOffer        CandidateStatus = "offer"
	CandidateStatusHired        CandidateStatus = "hired"
	CandidateStatusRejected     CandidateStatus = "rejected"
)

// Candidate is an applicant for a job posting.
type Candidate struct {
	Meta
	JobPostingID string          `json:"jobPostingId,omitempty"`
	JobTitle     string          `json:"jobTitle,omitempty"`
	FirstName    string          `json:"firstName,omitempty"`
	LastName     string          `json:"lastName,omitempty"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	ResumeURL    string          `json:"resumeUrl,omitempty"`
	CoverLetter  string          `json:"coverLetter,omitempty"`
	Source       string          `json:"source,omitempty"`
	Rating       int             `json:"rating,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Status       CandidateStatus `json:"status,omitempty"`
	AppliedDate  string          `json:"appliedDate,omitempty"`
}

// FullName joins first and last name.
func (c *Candidate) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// InterviewStatus enumerates interview states.
type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "scheduled"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
)

// Interview is a meeting with a candidate.
type Interview struct {
	Meta
	CandidateID     string          `json:"candidateId,omitempty"`
	CandidateName   string          `json:"candidateName,omitempty"`
	CandidateEmail  string          `json:"candidateEmail,omitempty"`
	JobPostingID    string          `json:"jobPostingId,omitempty"`
	JobTitle        string          `json:"jobTitle,omitempty"`
	ScheduledAt     string          `json:"scheduledAt,omitempty"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
	Location        string          `json:"location,omitempty"`
	MeetingLink     string          `json:"meetingLink,omitempty"`
	Interviewers    []string        `json:"interviewers,omitempty"`
	Status          InterviewStatus `json:"status,omitempty"`
	Feedback        string          `json:"feedback,omitempty"`
}

// OfferStatus enumerates offer states.
type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "pending"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusDeclined  OfferStatus = "declined"
	OfferStatusWithdrawn OfferStatus = "withdrawn"
)

// Offer is a job offer extended to a candidate.
type Offer struct {
	Meta
	CandidateID    string           `json:"candidateId,omitempty"`
	CandidateName  string           `json:"candidateName,omitempty"`
	CandidateEmail string           `json:"candidateEmail,omitempty"`
	JobPostingID   string           `json:"jobPostingId,omitempty"`
	JobTitle       string           `json:"jobTitle,omitempty"`
	Salary         *decimal.Decimal `json:"salary,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	StartDate      string           `json:"startDate,omitempty"`
	ExpiresDate    string           `json:"expiresDate,omitempty"`
	Status         OfferStatus      `json:"status,omitempty"`
	RespondedDate  string           `json:"respondedDate,omitempty"`
}

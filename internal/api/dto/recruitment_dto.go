package dto

import (
	"github.com/shopspring/decimal"

	"github.com/spec-kit/hris-service/internal/domain"
)

// ApplyRequest is a careers site application.
type ApplyRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	ResumeURL   string `json:"resumeUrl" validate:"omitempty,url"`
	CoverLetter string `json:"coverLetter"`
	Source      string `json:"source"`
}

// ToDomain converts the application into a candidate record.
func (r ApplyRequest) ToDomain() *domain.Candidate {
	return &domain.Candidate{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		ResumeURL:   r.ResumeURL,
		CoverLetter: r.CoverLetter,
		Source:      r.Source,
	}
}

// ScheduleInterviewRequest payload.
type ScheduleInterviewRequest struct {
	CandidateID     string   `json:"candidateId" validate:"required"`
	ScheduledAt     string   `json:"scheduledAt" validate:"required"`
	DurationMinutes int      `json:"durationMinutes" validate:"omitempty,gt=0"`
	Location        string   `json:"location"`
	MeetingLink     string   `json:"meetingLink" validate:"omitempty,url"`
	Interviewers    []string `json:"interviewers"`
	ScheduledBy     string   `json:"scheduledBy"`
}

// ToDomain converts the payload into an interview record.
func (r ScheduleInterviewRequest) ToDomain() *domain.Interview {
	return &domain.Interview{
		CandidateID:     r.CandidateID,
		ScheduledAt:     r.ScheduledAt,
		DurationMinutes: r.DurationMinutes,
		Location:        r.Location,
		MeetingLink:     r.MeetingLink,
		Interviewers:    r.Interviewers,
	}
}

// ExtendOfferRequest payload.
type ExtendOfferRequest struct {
	CandidateID string           `json:"candidateId" validate:"required"`
	Salary      *decimal.Decimal `json:"salary"`
	Currency    string           `json:"currency" validate:"omitempty,len=3"`
	StartDate   string           `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	ExpiresDate string           `json:"expiresDate" validate:"omitempty,datetime=2006-01-02"`
	ExtendedBy  string           `json:"extendedBy"`
}

// ToDomain converts the payload into an offer record.
func (r ExtendOfferRequest) ToDomain() *domain.Offer {
	return &domain.Offer{
		CandidateID: r.CandidateID,
		Salary:      r.Salary,
		Currency:    r.Currency,
		StartDate:   r.StartDate,
		ExpiresDate: r.ExpiresDate,
	}
}

// RespondOfferRequest records a candidate's answer.
type RespondOfferRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

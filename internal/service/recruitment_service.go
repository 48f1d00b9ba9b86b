package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/events"
	"github.com/spec-kit/hris-service/internal/repository"
	apperrors "github.com/spec-kit/hris-service/pkg/util"
)

// RecruitmentService covers job postings, candidates, interviews and offers.
type RecruitmentService struct {
	Postings   *Records[*domain.JobPosting]
	Candidates *Records[*domain.Candidate]
	Interviews *Records[*domain.Interview]
	Offers     *Records[*domain.Offer]
	dispatcher events.Dispatcher
	clock      Clock
}

// RecruitmentDependencies bundles what the recruitment service needs.
type RecruitmentDependencies struct {
	Postings   repository.Provider[*domain.JobPosting]
	Candidates repository.Provider[*domain.Candidate]
	Interviews repository.Provider[*domain.Interview]
	Offers     repository.Provider[*domain.Offer]
	Dispatcher events.Dispatcher
	Clock      Clock
}

// NewRecruitmentService constructs the service.
func NewRecruitmentService(deps RecruitmentDependencies) *RecruitmentService {
	return &RecruitmentService{
		Postings:   NewRecords(repository.JobPostings, deps.Postings),
		Candidates: NewRecords(repository.Candidates, deps.Candidates),
		Interviews: NewRecords(repository.Interviews, deps.Interviews),
		Offers:     NewRecords(repository.Offers, deps.Offers),
		dispatcher: deps.Dispatcher,
		clock:      deps.Clock,
	}
}

// UpdatePostingStatus moves a posting to status, stamping the publish or close date.
func (s *RecruitmentService) UpdatePostingStatus(ctx context.Context, companyID, id string, status domain.JobPostingStatus) (*domain.JobPosting, error) {
	patch := repository.Patch{"status": string(status)}
	switch status {
	case domain.JobPostingStatusPublished:
		patch["publishedDate"] = s.clock.today()
		patch["closedDate"] = nil
	case domain.JobPostingStatusClosed:
		patch["closedDate"] = s.clock.today()
	case domain.JobPostingStatusDraft:
	default:
		return nil, invalidStatus("job posting", string(status))
	}
	return s.Postings.Update(ctx, companyID, id, patch)
}

// Publish makes the posting visible on the careers site.
func (s *RecruitmentService) Publish(ctx context.Context, companyID, id string) (*domain.JobPosting, error) {
	return s.UpdatePostingStatus(ctx, companyID, id, domain.JobPostingStatusPublished)
}

// Close stops accepting applications.
func (s *RecruitmentService) Close(ctx context.Context, companyID, id string) (*domain.JobPosting, error) {
	return s.UpdatePostingStatus(ctx, companyID, id, domain.JobPostingStatusClosed)
}

// PublishedJobs lists the postings shown on a company's careers site.
func (s *RecruitmentService) PublishedJobs(ctx context.Context, companyID string) ([]*domain.JobPosting, error) {
	return s.Postings.List(ctx, companyID, ListOptions{
		Where: map[string]string{"status": string(domain.JobPostingStatusPublished)},
	})
}

// PublishedJob returns a posting only while it is published.
func (s *RecruitmentService) PublishedJob(ctx context.Context, companyID, id string) (*domain.JobPosting, error) {
	posting, err := s.Postings.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if posting.Status != domain.JobPostingStatusPublished {
		return nil, fmt.Errorf("job posting %s: %w", id, repository.ErrNotFound)
	}
	return posting, nil
}

// Apply records an application submitted through the careers site.
func (s *RecruitmentService) Apply(ctx context.Context, companyID, jobID string, candidate *domain.Candidate) (*domain.Candidate, error) {
	posting, err := s.PublishedJob(ctx, companyID, jobID)
	if err != nil {
		return nil, err
	}
	candidate.JobPostingID = posting.ID
	candidate.JobTitle = posting.Title
	candidate.Email = strings.ToLower(strings.TrimSpace(candidate.Email))
	candidate.Status = domain.CandidateStatusNew
	candidate.AppliedDate = s.clock.today()
	if candidate.Source == "" {
		candidate.Source = "careers"
	}
	return s.Candidates.Create(ctx, companyID, candidate)
}

// UpdateCandidateStatus moves a candidate along the pipeline.
func (s *RecruitmentService) UpdateCandidateStatus(ctx context.Context, companyID, id string, status domain.CandidateStatus) (*domain.Candidate, error) {
	switch status {
	case domain.CandidateStatusNew, domain.CandidateStatusScreening, domain.CandidateStatusInterviewing,
		domain.CandidateStatusOffer, domain.CandidateStatusHired, domain.CandidateStatusRejected:
	default:
		return nil, invalidStatus("candidate", string(status))
	}
	return s.Candidates.Update(ctx, companyID, id, repository.Patch{"status": string(status)})
}

// ScheduleInterview books an interview with a candidate and invites them.
func (s *RecruitmentService) ScheduleInterview(ctx context.Context, companyID, actor string, interview *domain.Interview) (*domain.Interview, error) {
	candidate, err := s.Candidates.Get(ctx, companyID, interview.CandidateID)
	if err != nil {
		return nil, err
	}
	interview.CandidateName = candidate.FullName()
	interview.CandidateEmail = candidate.Email
	interview.JobPostingID = candidate.JobPostingID
	interview.JobTitle = candidate.JobTitle
	interview.Status = domain.InterviewStatusScheduled

	created, err := s.Interviews.Create(ctx, companyID, interview)
	if err != nil {
		return nil, err
	}
	if candidate.Status == domain.CandidateStatusNew || candidate.Status == domain.CandidateStatusScreening {
		if _, err := s.UpdateCandidateStatus(ctx, companyID, candidate.ID, domain.CandidateStatusInterviewing); err != nil {
			return nil, err
		}
	}

	publishEvent(ctx, s.dispatcher, s.clock, events.Event{
		Type:      events.EventInterviewScheduled,
		CompanyID: companyID,
		EntityID:  created.ID,
		Actor:     actor,
		Payload: events.InterviewScheduledPayload{
			CandidateName:   created.CandidateName,
			CandidateEmail:  created.CandidateEmail,
			JobTitle:        created.JobTitle,
			ScheduledAt:     created.ScheduledAt,
			DurationMinutes: created.DurationMinutes,
			Location:        created.Location,
			MeetingLink:     created.MeetingLink,
			Interviewers:    created.Interviewers,
		},
	})
	return created, nil
}

// UpdateInterviewStatus completes or cancels an interview, optionally recording feedback.
func (s *RecruitmentService) UpdateInterviewStatus(ctx context.Context, companyID, id string, status domain.InterviewStatus, feedback string) (*domain.Interview, error) {
	switch status {
	case domain.InterviewStatusScheduled, domain.InterviewStatusCompleted, domain.InterviewStatusCancelled:
	default:
		return nil, invalidStatus("interview", string(status))
	}
	patch := repository.Patch{"status": string(status)}
	if feedback = strings.TrimSpace(feedback); feedback != "" {
		patch["feedback"] = feedback
	}
	return s.Interviews.Update(ctx, companyID, id, patch)
}

// ExtendOffer sends an offer to a candidate and moves them to the offer stage.
func (s *RecruitmentService) ExtendOffer(ctx context.Context, companyID, actor string, offer *domain.Offer) (*domain.Offer, error) {
	candidate, err := s.Candidates.Get(ctx, companyID, offer.CandidateID)
	if err != nil {
		return nil, err
	}
	offer.CandidateName = candidate.FullName()
	offer.CandidateEmail = candidate.Email
	offer.JobPostingID = candidate.JobPostingID
	offer.JobTitle = candidate.JobTitle
	offer.Status = domain.OfferStatusPending
	offer.RespondedDate = ""

	created, err := s.Offers.Create(ctx, companyID, offer)
	if err != nil {
		return nil, err
	}
	if _, err := s.UpdateCandidateStatus(ctx, companyID, candidate.ID, domain.CandidateStatusOffer); err != nil {
		return nil, err
	}
	s.publishOffer(ctx, events.EventOfferExtended, actor, created)
	return created, nil
}

// RespondOffer records the candidate's answer. Accepting hires the candidate.
func (s *RecruitmentService) RespondOffer(ctx context.Context, companyID, id string, accept bool) (*domain.Offer, error) {
	status := domain.OfferStatusDeclined
	if accept {
		status = domain.OfferStatusAccepted
	}
	updated, err := s.Offers.Update(ctx, companyID, id, repository.Patch{
		"status":        string(status),
		"respondedDate": s.clock.today(),
	})
	if err != nil {
		return nil, err
	}
	if !accept {
		return updated, nil
	}

	if _, err := s.UpdateCandidateStatus(ctx, companyID, updated.CandidateID, domain.CandidateStatusHired); err != nil {
		return nil, err
	}
	s.publishOffer(ctx, events.EventOfferAccepted, "", updated)
	return updated, nil
}

// WithdrawOffer retracts a pending offer.
func (s *RecruitmentService) WithdrawOffer(ctx context.Context, companyID, id string) (*domain.Offer, error) {
	return s.Offers.Update(ctx, companyID, id, repository.Patch{"status": string(domain.OfferStatusWithdrawn)})
}

func (s *RecruitmentService) publishOffer(ctx context.Context, eventType events.EventType, actor string, offer *domain.Offer) {
	payload := events.OfferPayload{
		CandidateID:    offer.CandidateID,
		CandidateName:  offer.CandidateName,
		CandidateEmail: offer.CandidateEmail,
		JobTitle:       offer.JobTitle,
		Currency:       offer.Currency,
		StartDate:      offer.StartDate,
		ExpiresDate:    offer.ExpiresDate,
	}
	if offer.Salary != nil {
		payload.Salary = offer.Salary.StringFixed(2)
	}
	publishEvent(ctx, s.dispatcher, s.clock, events.Event{
		Type:      eventType,
		CompanyID: offer.CompanyID,
		EntityID:  offer.ID,
		Actor:     actor,
		Payload:   payload,
	})
}

func invalidStatus(resource, status string) error {
	return apperrors.NewValidationError(fmt.Sprintf("invalid %s status", resource), map[string]any{"status": status})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hris-service/internal/api/dto"
	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/service"
)

// RecruitmentHandler manages the hiring pipeline endpoints.
type RecruitmentHandler struct {
	service *service.RecruitmentService
}

// NewRecruitmentHandler constructs handler.
func NewRecruitmentHandler(recruitmentService *service.RecruitmentService) *RecruitmentHandler {
	return &RecruitmentHandler{service: recruitmentService}
}

// PostingStatus POST /api/job-postings/:id/status.
func (h *RecruitmentHandler) PostingStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	posting, err := h.service.UpdatePostingStatus(c.UserContext(), CompanyFromContext(c), c.Params("id"), domain.JobPostingStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": posting})
}

// CandidateStatus POST /api/candidates/:id/status.
func (h *RecruitmentHandler) CandidateStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	candidate, err := h.service.UpdateCandidateStatus(c.UserContext(), CompanyFromContext(c), c.Params("id"), domain.CandidateStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidate})
}

// ScheduleInterview POST /api/interviews.
func (h *RecruitmentHandler) ScheduleInterview(c *fiber.Ctx) error {
	var req dto.ScheduleInterviewRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	interview, err := h.service.ScheduleInterview(c.UserContext(), CompanyFromContext(c), req.ScheduledBy, req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": interview})
}

// InterviewStatus POST /api/interviews/:id/status.
func (h *RecruitmentHandler) InterviewStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	interview, err := h.service.UpdateInterviewStatus(c.UserContext(), CompanyFromContext(c), c.Params("id"), domain.InterviewStatus(req.Status), req.Feedback)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": interview})
}

// ExtendOffer POST /api/offers.
func (h *RecruitmentHandler) ExtendOffer(c *fiber.Ctx) error {
	var req dto.ExtendOfferRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	offer, err := h.service.ExtendOffer(c.UserContext(), CompanyFromContext(c), req.ExtendedBy, req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": offer})
}

// RespondOffer POST /api/offers/:id/respond.
func (h *RecruitmentHandler) RespondOffer(c *fiber.Ctx) error {
	var req dto.RespondOfferRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	offer, err := h.service.RespondOffer(c.UserContext(), CompanyFromContext(c), c.Params("id"), *req.Accept)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": offer})
}

// WithdrawOffer POST /api/offers/:id/withdraw.
func (h *RecruitmentHandler) WithdrawOffer(c *fiber.Ctx) error {
	offer, err := h.service.WithdrawOffer(c.UserContext(), CompanyFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": offer})
}

// Jobs GET /careers/:companyId/jobs.
func (h *RecruitmentHandler) Jobs(c *fiber.Ctx) error {
	jobs, err := h.service.PublishedJobs(c.UserContext(), CompanyFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobs})
}

// Job GET /careers/:companyId/jobs/:id.
func (h *RecruitmentHandler) Job(c *fiber.Ctx) error {
	job, err := h.service.PublishedJob(c.UserContext(), CompanyFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": job})
}

// Apply POST /careers/:companyId/jobs/:id/apply.
func (h *RecruitmentHandler) Apply(c *fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	candidate, err := h.service.Apply(c.UserContext(), CompanyFromContext(c), c.Params("id"), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"id":          candidate.ID,
		"jobTitle":    candidate.JobTitle,
		"status":      candidate.Status,
		"appliedDate": candidate.AppliedDate,
	}})
}

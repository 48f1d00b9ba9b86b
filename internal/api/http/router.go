package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/hris-service/internal/api/http/handlers"
	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Metrics       *observability.Metrics
	Companies     *handlers.RecordsHandler[*domain.Company]
	Employees     *handlers.RecordsHandler[*domain.Employee]
	LeaveTypes    *handlers.RecordsHandler[*domain.LeaveType]
	LeaveRequests *handlers.RecordsHandler[*domain.LeaveRequest]
	JobPostings   *handlers.RecordsHandler[*domain.JobPosting]
	Candidates    *handlers.RecordsHandler[*domain.Candidate]
	Interviews    *handlers.RecordsHandler[*domain.Interview]
	Offers        *handlers.RecordsHandler[*domain.Offer]
	Payroll       *handlers.RecordsHandler[*domain.PayrollRecord]
	Documents     *handlers.RecordsHandler[*domain.DocumentFile]
	Notifications *handlers.RecordsHandler[*domain.Notification]

	Leave         *handlers.LeaveHandler
	Invitations   *handlers.EmployeesHandler
	Recruitment   *handlers.RecruitmentHandler
	PayrollOps    *handlers.PayrollHandler
	Inbox         *handlers.NotificationsHandler
	DocumentFiles *handlers.DocumentsHandler
}

// crud is the route set every collection exposes.
type crud interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func mountCRUD(r fiber.Router, h crud) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	careers := app.Group("/careers/:companyId")
	careers.Get("/jobs", cfg.Recruitment.Jobs)
	careers.Get("/jobs/:id", cfg.Recruitment.Job)
	careers.Post("/jobs/:id/apply", cfg.Recruitment.Apply)

	app.Post("/portal/invitations/verify", cfg.Invitations.VerifyInvitation)

	api := app.Group("/api")
	api.All("/documents/list", cfg.DocumentFiles.ListFolder)

	// Shared catalogs are readable without a tenant.
	mountCRUD(api.Group("/companies"), cfg.Companies)
	mountCRUD(api.Group("/leave-types"), cfg.LeaveTypes)

	scoped := api.Group("", handlers.RequireCompany)

	employees := scoped.Group("/employees")
	employees.Post("/invite", cfg.Invitations.Invite)
	mountCRUD(employees, cfg.Employees)

	leave := scoped.Group("/leave-requests")
	leave.Get("/stream", cfg.Leave.Stream)
	leave.Post("/:id/approve", cfg.Leave.Approve)
	leave.Post("/:id/reject", cfg.Leave.Reject)
	leave.Post("/:id/cancel", cfg.Leave.Cancel)
	leave.Post("/:id/status", cfg.Leave.UpdateStatus)
	mountCRUD(leave, cfg.LeaveRequests)

	postings := scoped.Group("/job-postings")
	postings.Post("/:id/status", cfg.Recruitment.PostingStatus)
	mountCRUD(postings, cfg.JobPostings)

	candidates := scoped.Group("/candidates")
	candidates.Post("/:id/status", cfg.Recruitment.CandidateStatus)
	mountCRUD(candidates, cfg.Candidates)

	interviews := scoped.Group("/interviews")
	interviews.Post("/", cfg.Recruitment.ScheduleInterview)
	interviews.Post("/:id/status", cfg.Recruitment.InterviewStatus)
	mountCRUD(interviews, cfg.Interviews)

	offers := scoped.Group("/offers")
	offers.Post("/", cfg.Recruitment.ExtendOffer)
	offers.Post("/:id/respond", cfg.Recruitment.RespondOffer)
	offers.Post("/:id/withdraw", cfg.Recruitment.WithdrawOffer)
	mountCRUD(offers, cfg.Offers)

	payroll := scoped.Group("/payroll")
	payroll.Get("/export", cfg.PayrollOps.Export)
	payroll.Post("/:id/status", cfg.PayrollOps.UpdateStatus)
	mountCRUD(payroll, cfg.Payroll)

	mountCRUD(scoped.Group("/documents"), cfg.Documents)

	notifications := scoped.Group("/notifications")
	notifications.Post("/email", cfg.Inbox.SendEmail)
	notifications.Post("/:id/read", cfg.Inbox.MarkRead)
	mountCRUD(notifications, cfg.Notifications)
}

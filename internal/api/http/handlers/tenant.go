package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hris-service/internal/repository"
)

// CompanyHeader carries the tenant of every scoped request.
const CompanyHeader = "X-Company-ID"

const companyKey = "company_id"

// RequireCompany reads the tenant header into the request locals and rejects requests without one.
func RequireCompany(c *fiber.Ctx) error {
	companyID := strings.TrimSpace(c.Get(CompanyHeader))
	if companyID == "" {
		return repository.ErrTenantRequired
	}
	c.Locals(companyKey, companyID)
	return c.Next()
}

// CompanyFromContext returns the tenant set by RequireCompany, or the :companyId route param
// on public routes.
func CompanyFromContext(c *fiber.Ctx) string {
	if companyID, ok := c.Locals(companyKey).(string); ok {
		return companyID
	}
	return c.Params("companyId")
}

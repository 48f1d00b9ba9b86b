package handlers

import (
	"fmt"
	"regexp"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hris-service/internal/api/dto"
	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/service"
	apperrors "github.com/spec-kit/hris-service/pkg/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// PayrollHandler manages payroll status changes and exports.
type PayrollHandler struct {
	service *service.PayrollService
}

// NewPayrollHandler constructs handler.
func NewPayrollHandler(payrollService *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{service: payrollService}
}

// UpdateStatus POST /api/payroll/:id/status.
func (h *PayrollHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	record, err := h.service.UpdateStatus(c.UserContext(), CompanyFromContext(c), c.Params("id"), domain.PayrollStatus(req.Status), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// Export GET /api/payroll/export?period=YYYY-MM.
func (h *PayrollHandler) Export(c *fiber.Ctx) error {
	period := c.Query("period")
	if period != "" && !periodPattern.MatchString(period) {
		return apperrors.NewValidationError("period must be YYYY-MM", map[string]any{"period": period})
	}
	workbook, err := h.service.ExportWorkbook(c.UserContext(), CompanyFromContext(c), period)
	if err != nil {
		return err
	}
	name := "payroll.xlsx"
	if period != "" {
		name = fmt.Sprintf("payroll-%s.xlsx", period)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(workbook)
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/events"
	"github.com/spec-kit/hris-service/internal/repository"
)

const payrollSheet = "Payroll"

var payrollHeadings = []any{
	"Employee", "Email", "Department", "Period", "Pay Date",
	"Base Salary", "Allowances", "Deductions", "Tax", "Net Pay", "Currency", "Status",
}

// PayrollService manages payroll records and payment notifications.
type PayrollService struct {
	*Records[*domain.PayrollRecord]
	dispatcher events.Dispatcher
	clock      Clock
}

// PayrollDependencies bundles what the payroll service needs.
type PayrollDependencies struct {
	Records    repository.Provider[*domain.PayrollRecord]
	Dispatcher events.Dispatcher
	Clock      Clock
}

// NewPayrollService constructs the service.
func NewPayrollService(deps PayrollDependencies) *PayrollService {
	return &PayrollService{
		Records:    NewRecords(repository.PayrollRecords, deps.Records),
		dispatcher: deps.Dispatcher,
		clock:      deps.Clock,
	}
}

// UpdateStatus moves a payroll record to status. Paying stamps the pay date when unset and
// announces the payslip; failing records the reason and announces the failure.
func (s *PayrollService) UpdateStatus(ctx context.Context, companyID, id string, status domain.PayrollStatus, reason string) (*domain.PayrollRecord, error) {
	current, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	patch := repository.Patch{"status": string(status)}
	var eventType events.EventType
	switch status {
	case domain.PayrollStatusDraft, domain.PayrollStatusProcessed:
	case domain.PayrollStatusPaid:
		if current.PayDate == "" {
			patch["payDate"] = s.clock.today()
		}
		patch["failureReason"] = nil
		eventType = events.EventPayslipReady
	case domain.PayrollStatusFailed:
		if reason = strings.TrimSpace(reason); reason != "" {
			patch["failureReason"] = reason
		}
		eventType = events.EventPaymentFailed
	default:
		return nil, invalidStatus("payroll", string(status))
	}

	updated, err := s.Update(ctx, companyID, id, patch)
	if err != nil {
		return nil, err
	}
	if eventType != "" {
		publishEvent(ctx, s.dispatcher, s.clock, events.Event{
			Type:      eventType,
			CompanyID: updated.CompanyID,
			EntityID:  updated.ID,
			Payload: events.PayrollPayload{
				EmployeeID:    updated.EmployeeID,
				EmployeeName:  updated.EmployeeName,
				EmployeeEmail: updated.EmployeeEmail,
				Period:        updated.Period,
				NetPay:        netPay(updated).StringFixed(2),
				Currency:      updated.Currency,
				PayDate:       updated.PayDate,
				Reason:        updated.FailureReason,
			},
		})
	}
	return updated, nil
}

// ExportWorkbook renders the company's payroll for a period as an xlsx workbook.
// An empty period exports every record.
func (s *PayrollService) ExportWorkbook(ctx context.Context, companyID, period string) ([]byte, error) {
	opts := ListOptions{}
	if period != "" {
		opts.Where = map[string]string{"period": period}
	}
	records, err := s.List(ctx, companyID, opts)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(payrollSheet, "A1", &payrollHeadings); err != nil {
		return nil, err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			rec.EmployeeName, rec.EmployeeEmail, rec.Department, rec.Period, rec.PayDate,
			amount(rec.BaseSalary), amount(rec.Allowances), amount(rec.Deductions), amount(rec.Tax),
			netPay(rec).InexactFloat64(), rec.Currency, string(rec.Status),
		}
		if err := f.SetSheetRow(payrollSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write payroll row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func netPay(rec *domain.PayrollRecord) decimal.Decimal {
	if rec.NetPay != nil {
		return *rec.NetPay
	}
	return rec.ComputeNetPay()
}

func amount(d *decimal.Decimal) float64 {
	if d == nil {
		return 0
	}
	return d.InexactFloat64()
}

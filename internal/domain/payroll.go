package domain

import "github.com/shopspring/decimal"

// PayrollStatus enumerates payroll run states for one employee.
type PayrollStatus string

const (
	PayrollStatusDraft     PayrollStatus = "draft"
	PayrollStatusProcessed PayrollStatus = "processed"
	PayrollStatusPaid      PayrollStatus = "paid"
	PayrollStatusFailed    PayrollStatus = "failed"
)

// PayrollRecord is one employee's pay for one period.
type PayrollRecord struct {
	Meta
	EmployeeID     string           `json:"employeeId,omitempty"`
	EmployeeName   string           `json:"employeeName,omitempty"`
	EmployeeEmail  string           `json:"employeeEmail,omitempty"`
	Department     string           `json:"department,omitempty"`
	Period         string           `json:"period,omitempty"`
	PayPeriodStart string           `json:"payPeriodStart,omitempty"`
	PayPeriodEnd   string           `json:"payPeriodEnd,omitempty"`
	PayDate        string           `json:"payDate,omitempty"`
	BaseSalary     *decimal.Decimal `json:"baseSalary,omitempty"`
	Allowances     *decimal.Decimal `json:"allowances,omitempty"`
	Deductions     *decimal.Decimal `json:"deductions,omitempty"`
	Tax            *decimal.Decimal `json:"tax,omitempty"`
	NetPay         *decimal.Decimal `json:"netPay,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	Status         PayrollStatus    `json:"status,omitempty"`
	FailureReason  string           `json:"failureReason,omitempty"`
}

// ComputeNetPay returns base + allowances - deductions - tax, treating missing parts as zero.
func (p *PayrollRecord) ComputeNetPay() decimal.Decimal {
	net := valueOrZero(p.BaseSalary).Add(valueOrZero(p.Allowances))
	return net.Sub(valueOrZero(p.Deductions)).Sub(valueOrZero(p.Tax))
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

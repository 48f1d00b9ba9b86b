package service

import (
	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/repository"
)

// CompanyService manages tenants. Companies are not themselves tenant scoped.
type CompanyService struct {
	*Records[*domain.Company]
}

// NewCompanyService constructs the service.
func NewCompanyService(companies repository.Provider[*domain.Company]) *CompanyService {
	return &CompanyService{Records: NewRecords(repository.Companies, companies)}
}

// NewLeaveTypeService serves the shared leave catalog.
func NewLeaveTypeService(types repository.Provider[*domain.LeaveType]) *Records[*domain.LeaveType] {
	return NewRecords(repository.LeaveTypes, types)
}

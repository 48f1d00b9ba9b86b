package domain

// CompanyStatus enumerates tenant lifecycle states.
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "active"
	CompanyStatusInactive CompanyStatus = "inactive"
)

// Company is a tenant of the platform. Its ID is the company id other records are scoped by.
type Company struct {
	Meta
	Name     string        `json:"name,omitempty"`
	Domain   string        `json:"domain,omitempty"`
	Industry string        `json:"industry,omitempty"`
	Size     string        `json:"size,omitempty"`
	Address  string        `json:"address,omitempty"`
	LogoURL  string        `json:"logoUrl,omitempty"`
	Status   CompanyStatus `json:"status,omitempty"`
}

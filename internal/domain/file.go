package domain

// DocumentStatus enumerates document metadata states.
type DocumentStatus string

const (
	DocumentStatusActive   DocumentStatus = "active"
	DocumentStatusArchived DocumentStatus = "archived"
)

// DocumentFile is the metadata of a file kept in blob storage.
type DocumentFile struct {
	Meta
	Name        string         `json:"name,omitempty"`
	FolderPath  string         `json:"folderPath,omitempty"`
	URL         string         `json:"url,omitempty"`
	ContentType string         `json:"contentType,omitempty"`
	Size        int64          `json:"size,omitempty"`
	EmployeeID  string         `json:"employeeId,omitempty"`
	Category    string         `json:"category,omitempty"`
	UploadedBy  string         `json:"uploadedBy,omitempty"`
	Status      DocumentStatus `json:"status,omitempty"`
}

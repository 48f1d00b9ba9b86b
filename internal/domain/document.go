package domain

import "time"

// Meta carries the store-owned fields shared by every record.
// The store assigns them; patches never overwrite them.
type Meta struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Metadata exposes the embedded meta block to generic code.
func (m *Meta) Metadata() *Meta {
	return m
}

// Document is implemented by every entity record through the embedded Meta.
type Document interface {
	Metadata() *Meta
}

// MetaKeys lists the JSON keys owned by Meta.
var MetaKeys = []string{"id", "companyId", "createdAt", "updatedAt"}

// DateLayout is the calendar date format used by date-only fields.
const DateLayout = "2006-01-02"

// Today returns the current calendar date in DateLayout.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

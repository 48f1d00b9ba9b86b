package domain

// NotificationStatus enumerates in-app notification states.
type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)

// Notification is an in-app message for a user of the consoles.
type Notification struct {
	Meta
	RecipientID    string             `json:"recipientId,omitempty"`
	RecipientEmail string             `json:"recipientEmail,omitempty"`
	Type           string             `json:"type,omitempty"`
	Title          string             `json:"title,omitempty"`
	Message        string             `json:"message,omitempty"`
	Link           string             `json:"link,omitempty"`
	EmailSent      *bool              `json:"emailSent,omitempty"`
	Status         NotificationStatus `json:"status,omitempty"`
	ReadDate       string             `json:"readDate,omitempty"`
}

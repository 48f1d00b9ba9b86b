package dto

// SendEmailRequest sends one of the transactional templates.
type SendEmailRequest struct {
	To       string            `json:"to" validate:"required,email"`
	Template string            `json:"template" validate:"required"`
	Data     map[string]string `json:"data"`
}

// SendEmailResponse reports whether the provider accepted the message.
type SendEmailResponse struct {
	Sent bool `json:"sent"`
}

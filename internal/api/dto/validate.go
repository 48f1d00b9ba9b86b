package dto

import "github.com/go-playground/validator/v10"

// Validate checks request payloads against their struct tags.
var Validate = validator.New(validator.WithRequiredStructEnabled())

// Check validates a payload. Failures map to VALIDATION_FAILED with per-field details.
func Check(payload any) error {
	return Validate.Struct(payload)
}

package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hris-service/internal/api/dto"
	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/repository"
	"github.com/spec-kit/hris-service/internal/service"
	apperrors "github.com/spec-kit/hris-service/pkg/util"
)

// Decoder turns a create request body into a record, validating it on the way.
type Decoder[T domain.Document] func(c *fiber.Ctx) (T, error)

// RecordsHandler serves the CRUD endpoints of one collection.
type RecordsHandler[T domain.Document] struct {
	records *service.Records[T]
	decode  Decoder[T]
}

// NewRecordsHandler constructs handler. A nil decode parses the body into a fresh record.
func NewRecordsHandler[T domain.Document](records *service.Records[T], newRecord func() T, decode Decoder[T]) *RecordsHandler[T] {
	if decode == nil {
		decode = func(c *fiber.Ctx) (T, error) {
			record := newRecord()
			if err := json.Unmarshal(c.Body(), record); err != nil {
				return record, apperrors.NewValidationError("invalid payload", nil)
			}
			return record, nil
		}
	}
	return &RecordsHandler[T]{records: records, decode: decode}
}

// List GET /. Query parameters other than limit filter on record fields.
func (h *RecordsHandler[T]) List(c *fiber.Ctx) error {
	opts := service.ListOptions{}
	for key, value := range c.Queries() {
		if key == "limit" {
			limit, err := strconv.Atoi(value)
			if err != nil || limit < 0 {
				return apperrors.NewValidationError("invalid limit", map[string]any{"limit": value})
			}
			opts.Limit = limit
			continue
		}
		if opts.Where == nil {
			opts.Where = map[string]string{}
		}
		opts.Where[key] = value
	}
	records, err := h.records.List(c.UserContext(), CompanyFromContext(c), opts)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": records})
}

// Get GET /:id.
func (h *RecordsHandler[T]) Get(c *fiber.Ctx) error {
	record, err := h.records.Get(c.UserContext(), CompanyFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// Create POST /.
func (h *RecordsHandler[T]) Create(c *fiber.Ctx) error {
	record, err := h.decode(c)
	if err != nil {
		return err
	}
	created, err := h.records.Create(c.UserContext(), CompanyFromContext(c), record)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": created})
}

// Update PATCH /:id. The body is a partial record; null clears a field.
func (h *RecordsHandler[T]) Update(c *fiber.Ctx) error {
	var patch repository.Patch
	if err := json.Unmarshal(c.Body(), &patch); err != nil || len(patch) == 0 {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := h.records.Update(c.UserContext(), CompanyFromContext(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": updated})
}

// Delete DELETE /:id.
func (h *RecordsHandler[T]) Delete(c *fiber.Ctx) error {
	if err := h.records.Delete(c.UserContext(), CompanyFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// bindBody parses and validates a request payload.
func bindBody(c *fiber.Ctx, payload any) error {
	if err := c.BodyParser(payload); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Check(payload)
}

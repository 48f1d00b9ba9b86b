package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hris-service/internal/api/dto"
	"github.com/spec-kit/hris-service/internal/service"
)

// DocumentsHandler serves the storage folder listing.
type DocumentsHandler struct {
	service *service.DocumentService
	logger  *zap.Logger
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(documentService *service.DocumentService, logger *zap.Logger) *DocumentsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentsHandler{service: documentService, logger: logger}
}

// ListFolder POST /api/documents/list. Responses use a {success, files|error} envelope,
// not the API error shape.
func (h *DocumentsHandler) ListFolder(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		c.Set(fiber.HeaderAllow, fiber.MethodPost)
		return c.Status(fiber.StatusMethodNotAllowed).JSON(dto.ListFolderError{Error: "method not allowed"})
	}

	var req dto.ListFolderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ListFolderError{Error: "invalid payload"})
		}
	}
	if strings.TrimSpace(req.FolderPath) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ListFolderError{Error: "folderPath is required"})
	}

	files, err := h.service.ListFolder(c.UserContext(), req.FolderPath)
	if err != nil {
		if errors.Is(err, service.ErrFolderPathRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ListFolderError{Error: err.Error()})
		}
		h.logger.Error("folder listing failed", zap.String("folder", req.FolderPath), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ListFolderError{Error: err.Error()})
	}
	return c.JSON(dto.ListFolderResponse{Success: true, Files: files})
}

package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hris-service/internal/api/dto"
	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/realtime"
	"github.com/spec-kit/hris-service/internal/service"
	apperrors "github.com/spec-kit/hris-service/pkg/util"
)

const streamHeartbeat = 25 * time.Second

// LeaveHandler manages leave review endpoints.
type LeaveHandler struct {
	service *service.LeaveService
	feed    realtime.Feed
	logger  *zap.Logger
}

// NewLeaveHandler constructs handler.
func NewLeaveHandler(leaveService *service.LeaveService, feed realtime.Feed, logger *zap.Logger) *LeaveHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveHandler{service: leaveService, feed: feed, logger: logger}
}

// DecodeCreate validates a new leave request body.
func (h *LeaveHandler) DecodeCreate(c *fiber.Ctx) (*domain.LeaveRequest, error) {
	var req dto.CreateLeaveRequest
	if err := bindBody(c, &req); err != nil {
		return nil, err
	}
	return req.ToDomain(), nil
}

// Approve POST /api/leave-requests/:id/approve.
func (h *LeaveHandler) Approve(c *fiber.Ctx) error {
	var req dto.LeaveDecisionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	leave, err := h.service.Approve(c.UserContext(), CompanyFromContext(c), c.Params("id"), req.Approver)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leave})
}

// Reject POST /api/leave-requests/:id/reject.
func (h *LeaveHandler) Reject(c *fiber.Ctx) error {
	var req dto.LeaveDecisionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	leave, err := h.service.Reject(c.UserContext(), CompanyFromContext(c), c.Params("id"), req.Approver, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leave})
}

// Cancel POST /api/leave-requests/:id/cancel.
func (h *LeaveHandler) Cancel(c *fiber.Ctx) error {
	leave, err := h.service.Cancel(c.UserContext(), CompanyFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leave})
}

// UpdateStatus POST /api/leave-requests/:id/status.
func (h *LeaveHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	leave, err := h.service.UpdateStatus(c.UserContext(), CompanyFromContext(c), c.Params("id"), domain.LeaveStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leave})
}

// Stream GET /api/leave-requests/stream pushes the company's leave requests as server-sent
// events: the full list right away and again after every change.
func (h *LeaveHandler) Stream(c *fiber.Ctx) error {
	opts := service.ListOptions{}
	if status := c.Query("status"); status != "" {
		opts.Where = map[string]string{"status": status}
	}
	q := h.service.Query(CompanyFromContext(c), opts)

	updates := make(chan []*domain.LeaveRequest, 1)
	ctx, cancel := context.WithCancel(context.Background())
	stop, err := realtime.Watch(ctx, h.feed, h.service.Collection(), h.service.Provider(), q,
		func(records []*domain.LeaveRequest, err error) {
			if err != nil {
				h.logger.Warn("leave stream read failed", zap.Error(err))
				return
			}
			latest(updates, records)
		})
	if err != nil {
		cancel()
		return apperrors.NewUnavailable("change feed unavailable", err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer stop()
		ticker := time.NewTicker(streamHeartbeat)
		defer ticker.Stop()

		for {
			select {
			case records := <-updates:
				payload, err := json.Marshal(fiber.Map{"data": records})
				if err != nil {
					h.logger.Error("leave stream encode failed", zap.Error(err))
					return
				}
				fmt.Fprintf(w, "event: leave_requests\ndata: %s\n\n", payload)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
	return nil
}

// latest replaces any undelivered value in ch with v.
func latest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

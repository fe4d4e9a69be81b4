package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AppointmentsHandler manages viewing appointment endpoints for clients and
// agents.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService}
}

// Request POST /client/appointments.
func (h *AppointmentsHandler) Request(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RequestAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PropertyID <= 0 || req.ScheduledAt.IsZero() {
		return apperrors.NewValidationError("property_id and scheduled_at required", nil)
	}

	appointment, err := h.service.Request(c.UserContext(), sess.UserID, req.PropertyID, req.ScheduledAt, req.Notes)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewAppointmentResponse(appointment)})
}

// ListForClient GET /client/appointments.
func (h *AppointmentsHandler) ListForClient(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := parsePagination(c)
	items, err := h.service.ListForClient(c.UserContext(), sess.UserID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponses(items)})
}

// ListForAgent GET /agent/appointments.
func (h *AppointmentsHandler) ListForAgent(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := parsePagination(c)
	items, err := h.service.ListForAgent(c.UserContext(), sess.UserID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponses(items)})
}

// UpdateStatus PATCH /agent/appointments/:id/status confirms, cancels or
// completes an appointment on one of the agent's own properties.
func (h *AppointmentsHandler) UpdateStatus(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	appointmentID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAppointmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	appointment, err := h.service.UpdateStatus(c.UserContext(), sess.UserID, appointmentID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(appointment)})
}

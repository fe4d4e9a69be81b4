package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/repository"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// PropertiesHandler manages agent listing endpoints.
type PropertiesHandler struct {
	service *service.PropertyService
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(propertyService *service.PropertyService) *PropertiesHandler {
	return &PropertiesHandler{service: propertyService}
}

// Create POST /agent/properties.
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.City == "" || req.Price <= 0 {
		return apperrors.NewValidationError("title, city and a positive price required", nil)
	}

	property, err := h.service.CreateProperty(c.UserContext(), sess.UserID, service.PropertyCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewPropertyResponse(property)})
}

// List GET /agent/properties returns the agent's own listings.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := parsePagination(c)
	items, err := h.service.ListForAgent(c.UserContext(), sess.UserID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPropertyResponses(items)})
}

// Update PUT /agent/properties/:id.
func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	propertyID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	property, err := h.service.UpdateProperty(c.UserContext(), sess.UserID, propertyID, service.PropertyCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPropertyResponse(property)})
}

// ChangeStatus PATCH /agent/properties/:id/status.
func (h *PropertiesHandler) ChangeStatus(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	propertyID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ChangePropertyStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	property, err := h.service.ChangeStatus(c.UserContext(), sess.UserID, propertyID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPropertyResponse(property)})
}

// Delete DELETE /agent/properties/:id.
func (h *PropertiesHandler) Delete(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	propertyID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteProperty(c.UserContext(), sess.UserID, propertyID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Browse GET /client/properties lists available properties with optional
// city and price filters.
func (h *PropertiesHandler) Browse(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	filter := repository.PropertyFilter{Limit: limit, Offset: offset}
	if city := c.Query("city"); city != "" {
		filter.City = &city
	}
	if raw := c.Query("min_price"); raw != "" {
		if val, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &val
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if val, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &val
		}
	}

	items, err := h.service.Browse(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPropertyResponses(items)})
}

// Detail GET /client/properties/:id.
func (h *PropertiesHandler) Detail(c *fiber.Ctx) error {
	propertyID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	property, err := h.service.GetByID(c.UserContext(), propertyID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPropertyResponse(property)})
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return int64(id), nil
}

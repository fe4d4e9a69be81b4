package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AdminHandler manages administrator endpoints.
type AdminHandler struct {
	users      *service.UserService
	properties *service.PropertyService
	activity   *service.ActivityService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(users *service.UserService, properties *service.PropertyService, activity *service.ActivityService) *AdminHandler {
	return &AdminHandler{users: users, properties: properties, activity: activity}
}

// ListUsers GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	users, err := h.users.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// UpdateUserStatus PATCH /admin/users/:id/status.
func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid user id", nil)
	}
	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.users.UpdateStatus(c.UserContext(), int64(id), domain.UserStatusID(req.StatusID))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// ListProperties GET /admin/properties returns every listing regardless of
// status or owner.
func (h *AdminHandler) ListProperties(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	items, err := h.properties.ListAll(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPropertyResponses(items)})
}

// ListActivity GET /admin/activity returns the login audit trail.
func (h *AdminHandler) ListActivity(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	entries, err := h.activity.ListRecent(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.ActivityResponse{
			ID:        entry.ID,
			UserID:    entry.UserID,
			Email:     entry.Email,
			Action:    entry.Action,
			Role:      entry.Role,
			CreatedAt: entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func parsePagination(c *fiber.Ctx) (limit, offset int) {
	page := c.QueryInt("page", 1)
	if page <= 0 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 20)
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return pageSize, (page - 1) * pageSize
}

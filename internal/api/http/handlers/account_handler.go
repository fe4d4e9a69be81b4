package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AccountHandler manages the signed-in user's own account.
type AccountHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

// NewAccountHandler constructs handler.
func NewAccountHandler(userService *service.UserService, authService *service.AuthService) *AccountHandler {
	return &AccountHandler{users: userService, auth: authService}
}

// Profile GET /account/profile.
func (h *AccountHandler) Profile(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.users.GetByID(c.UserContext(), sess.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// ChangePassword POST /account/password.
func (h *AccountHandler) ChangePassword(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || len(req.NewPassword) < 8 {
		return apperrors.NewValidationError("current password and a new password of at least 8 characters required", nil)
	}
	if err := h.auth.ChangePassword(c.UserContext(), sess.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

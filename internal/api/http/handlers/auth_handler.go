package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AuthHandler manages login, logout and account recovery endpoints.
type AuthHandler struct {
	service *service.AuthService
	session config.SessionConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: authService, session: sessionCfg}
}

// Login POST /auth/login.
//
// A successful login commits the session, sets the session cookie and tells
// the client where to go next: the sanitized redirect target carried through
// the login page, or the role's home when none was given.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		de := apperrors.ToDomainError(err)
		if de.HTTPStatus == fiber.StatusUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.LoginFailure{Message: de.Message})
		}
		return err
	}

	h.setSessionCookie(c, result.SessionToken)

	redirect := sanitizeRedirect(c.Query(h.session.RedirectParam))
	if redirect == "" {
		redirect = roleHome(result.Session.Role)
	}

	return c.JSON(dto.LoginResponse{
		Success: true,
		Session: dto.NewSessionResponse(result.Session),
		Auth: dto.AuthResponse{
			Token:     result.APIToken,
			ExpiresAt: result.APIExpiresAt,
		},
		Redirect: redirect,
	})
}

// Logout POST /auth/logout.
//
// Always succeeds: the session is cleared if present and the cookie is
// dropped either way.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(h.session.CookieName); token != "" {
		h.service.Logout(c.UserContext(), token)
	}
	c.ClearCookie(h.session.CookieName)

	if wantsJSONResponse(c) {
		return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
	}
	return c.Redirect(h.session.LoginPath, fiber.StatusSeeOther)
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		return apperrors.NewValidationError("name, email and a password of at least 8 characters required", nil)
	}

	user, err := h.service.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Session GET /auth/session returns the caller's session snapshot, or null
// for anonymous callers. The endpoint is deliberately unguarded so clients
// can probe their own state without triggering a redirect.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(sess)})
}

// RequestPasswordReset POST /auth/password-reset.
//
// The response is identical whether or not the email exists.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	if _, err := h.service.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		de := apperrors.ToDomainError(err)
		if de.HTTPStatus != fiber.StatusNotFound {
			return err
		}
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"requested": true}})
}

// ConfirmPasswordReset POST /auth/password-reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || len(req.NewPassword) < 8 {
		return apperrors.NewValidationError("token and a password of at least 8 characters required", nil)
	}

	if err := h.service.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	cookie := &fiber.Cookie{
		Name:     h.session.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if ttl := h.session.TTL(); ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
	}
	c.Cookie(cookie)
}

// sanitizeRedirect accepts only same-site paths. Absolute URLs and
// protocol-relative values fall through to the role home.
func sanitizeRedirect(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	return raw
}

func roleHome(role domain.Role) string {
	if home, ok := domain.HomePath(role); ok {
		return home
	}
	return "/"
}

func wantsJSONResponse(c *fiber.Ctx) bool {
	if c.Get(fiber.HeaderAuthorization) != "" {
		return true
	}
	return c.Accepts(fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

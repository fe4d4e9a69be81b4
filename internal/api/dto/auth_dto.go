package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/session"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse mirrors the legacy login payload: a success flag, the
// committed session snapshot and the path the client should navigate to.
type LoginResponse struct {
	Success  bool            `json:"success"`
	Session  SessionResponse `json:"session"`
	Auth     AuthResponse    `json:"auth"`
	Redirect string          `json:"redirect"`
}

// LoginFailure is the body returned when authentication fails.
type LoginFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthResponse carries the bearer token for API clients.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse is the public view of a session.
type SessionResponse struct {
	UserID    int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	RawRole   string      `json:"rol"`
	Initials  string      `json:"initials,omitempty"`
	ShortName string      `json:"short_name,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// RegisterRequest payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetRequest starts account recovery.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm completes account recovery.
type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// NewSessionResponse maps a session to its public view.
func NewSessionResponse(sess *session.Session) SessionResponse {
	return SessionResponse{
		UserID:    sess.UserID,
		Name:      sess.Name,
		Email:     sess.Email,
		Role:      sess.Role,
		RawRole:   sess.RawRole,
		Initials:  sess.Initials,
		ShortName: sess.ShortName,
		CreatedAt: sess.CreatedAt,
	}
}

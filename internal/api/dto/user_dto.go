package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// UserResponse is the admin view of an account.
type UserResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	RawRole   string      `json:"rol"`
	StatusID  int         `json:"status_id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UpdateUserStatusRequest payload.
type UpdateUserStatusRequest struct {
	StatusID int `json:"status_id"`
}

// ActivityResponse is one audit trail row.
type ActivityResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Action    string    `json:"action"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a user to its admin view.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.CanonicalRole(),
		RawRole:   u.Role,
		StatusID:  int(u.StatusID),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserResponses maps a slice of users.
func NewUserResponses(items []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(items))
	for i := range items {
		out = append(out, NewUserResponse(&items[i]))
	}
	return out
}

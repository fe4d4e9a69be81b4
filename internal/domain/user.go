package domain

import (
	"strings"
	"time"
)

// UserStatusID represents account lifecycle states as stored by the backend.
type UserStatusID int

const (
	UserStatusActive    UserStatusID = 1
	UserStatusSuspended UserStatusID = 2
)

// User is the domain model for application accounts across all roles.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	// Role holds the raw role text as stored by the backend; it is folded
	// through NormalizeRole before any comparison.
	Role      string
	StatusID  UserStatusID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanonicalRole returns the normalized form of the stored role text.
func (u *User) CanonicalRole() Role {
	return NormalizeRole(u.Role)
}

// Initials derives display initials from the user's name, e.g.
// "Laura Ortega" -> "LO".
func (u *User) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(u.Name) {
		b.WriteRune([]rune(part)[0])
		if b.Len() >= 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}

// ShortName returns the first word of the user's name for compact display.
func (u *User) ShortName() string {
	parts := strings.Fields(u.Name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

package session

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// Session is the authenticated identity held in durable storage. Its
// presence is the sole authentication signal; there is no separate
// logged-in flag.
//
// The JSON form matches the legacy browser payload, including the Spanish
// "rol" key, so sessions written before a role synonym was added still
// restore and re-normalize.
type Session struct {
	UserID    int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RawRole   string    `json:"rol"`
	Initials  string    `json:"initials,omitempty"`
	ShortName string    `json:"short_name,omitempty"`
	StatusID  int       `json:"status_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Role is the canonical form of RawRole, derived on commit and on
	// restore. It is deliberately excluded from the serialized form: the
	// raw value is the source of truth so a later synonym addition can
	// still reclaim old sessions.
	Role domain.Role `json:"-"`
}

// FromUser builds a session snapshot for an authenticated user.
func FromUser(u *domain.User) *Session {
	return &Session{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		RawRole:   u.Role,
		Initials:  u.Initials(),
		ShortName: u.ShortName(),
		StatusID:  int(u.StatusID),
		CreatedAt: time.Now().UTC(),
		Role:      u.CanonicalRole(),
	}
}

package domain

import "strings"

// Role is the canonical access-control role attached to a session.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAgent  Role = "agent"
	RoleClient Role = "client"
	// RoleUnknown is assigned to role values that match no synonym. It belongs
	// to no route allow-list, so it fails every role check.
	RoleUnknown Role = "unknown"
)

// roleSynonyms folds the role spellings the backend has produced over time
// (localized, mixed-case, with or without spacing) into canonical roles.
var roleSynonyms = map[string]Role{
	"admin":              RoleAdmin,
	"administrador":      RoleAdmin,
	"administrator":      RoleAdmin,
	"agent":              RoleAgent,
	"agente":             RoleAgent,
	"agenteinmobiliario": RoleAgent,
	"client":             RoleClient,
	"cliente":            RoleClient,
}

// CanonicalRoles lists the roles that may appear in a route allow-list.
var CanonicalRoles = []Role{RoleAdmin, RoleAgent, RoleClient}

// NormalizeRole maps an arbitrary backend role value to a canonical Role.
// It is pure and total: unrecognized values, including the empty string,
// come back as RoleUnknown rather than an error.
func NormalizeRole(raw string) Role {
	folded := strings.ToLower(strings.TrimSpace(raw))
	folded = strings.ReplaceAll(folded, " ", "")
	if role, ok := roleSynonyms[folded]; ok {
		return role
	}
	return RoleUnknown
}

// roleHomes maps each canonical role to its landing path after login.
var roleHomes = map[Role]string{
	RoleAdmin:  "/admin",
	RoleAgent:  "/agent",
	RoleClient: "/client",
}

// HomePath returns the default landing path for a role. ok is false for
// RoleUnknown and any other non-canonical value.
func HomePath(role Role) (string, bool) {
	home, ok := roleHomes[role]
	return home, ok
}

// Canonical reports whether role is one of the three canonical roles.
func Canonical(role Role) bool {
	_, ok := roleHomes[role]
	return ok
}

package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/realty-service/internal/domain"
)

func TestNormalizeRoleSynonyms(t *testing.T) {
	cases := map[string]domain.Role{
		"admin":               domain.RoleAdmin,
		"ADMIN":               domain.RoleAdmin,
		"Administrador":       domain.RoleAdmin,
		"ADMINISTRADOR":       domain.RoleAdmin,
		"administrator":       domain.RoleAdmin,
		"  admin  ":           domain.RoleAdmin,
		"agent":               domain.RoleAgent,
		"Agente":              domain.RoleAgent,
		"AgenteInmobiliario":  domain.RoleAgent,
		"agente inmobiliario": domain.RoleAgent,
		"client":              domain.RoleClient,
		"Cliente":             domain.RoleClient,
		"CLIENTE":             domain.RoleClient,
	}
	for raw, want := range cases {
		require.Equal(t, want, domain.NormalizeRole(raw), "input %q", raw)
	}
}

func TestNormalizeRoleUnrecognized(t *testing.T) {
	for _, raw := range []string{"", "manager", "root", "superuser", "admn"} {
		require.Equal(t, domain.RoleUnknown, domain.NormalizeRole(raw), "input %q", raw)
	}
}

func TestNormalizeRoleCaseInsensitiveEquivalence(t *testing.T) {
	require.Equal(t, domain.NormalizeRole("ADMINISTRADOR"), domain.NormalizeRole("admin"))
	require.Equal(t, domain.RoleAdmin, domain.NormalizeRole("ADMINISTRADOR"))
}

func TestHomePath(t *testing.T) {
	cases := map[domain.Role]string{
		domain.RoleAdmin:  "/admin",
		domain.RoleAgent:  "/agent",
		domain.RoleClient: "/client",
	}
	for role, want := range cases {
		home, ok := domain.HomePath(role)
		require.True(t, ok)
		require.Equal(t, want, home)
	}

	_, ok := domain.HomePath(domain.RoleUnknown)
	require.False(t, ok)
	_, ok = domain.HomePath(domain.Role("manager"))
	require.False(t, ok)
}

func TestUserDisplayHelpers(t *testing.T) {
	u := domain.User{Name: "Laura Ortega Diaz"}
	require.Equal(t, "LO", u.Initials())
	require.Equal(t, "Laura", u.ShortName())

	empty := domain.User{}
	require.Equal(t, "", empty.Initials())
	require.Equal(t, "", empty.ShortName())
}

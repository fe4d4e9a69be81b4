package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/session"
)

var testSessionCfg = config.SessionConfig{
	CookieName:    "realty_session",
	LoginPath:     "/auth/login",
	RedirectParam: "redirect",
}

func adminSession() *session.Session {
	return &session.Session{UserID: 1, Name: "Ana", Email: "ana@example.com", RawRole: "Administrador", Role: domain.RoleAdmin}
}

func TestDecideNoSession(t *testing.T) {
	d := auth.Decide(nil, []domain.Role{domain.RoleAdmin}, "/admin", "/auth/login", "redirect")
	require.False(t, d.Allowed)
	require.Equal(t, "/auth/login?redirect=%2Fadmin", d.RedirectTo)
}

func TestDecideEmptyRequiredList(t *testing.T) {
	d := auth.Decide(adminSession(), nil, "/account", "/auth/login", "redirect")
	require.True(t, d.Allowed)

	d = auth.Decide(nil, nil, "/account", "/auth/login", "redirect")
	require.False(t, d.Allowed)
	require.Equal(t, "/auth/login?redirect=%2Faccount", d.RedirectTo)
}

func TestDecideMatchingRole(t *testing.T) {
	d := auth.Decide(adminSession(), []domain.Role{domain.RoleAdmin}, "/admin", "/auth/login", "redirect")
	require.True(t, d.Allowed)
}

func TestDecideWrongRoleSameAsAnonymous(t *testing.T) {
	sess := adminSession()
	denied := auth.Decide(sess, []domain.Role{domain.RoleAgent}, "/agent", "/auth/login", "redirect")
	anonymous := auth.Decide(nil, []domain.Role{domain.RoleAgent}, "/agent", "/auth/login", "redirect")
	require.False(t, denied.Allowed)
	require.Equal(t, anonymous, denied)
}

func TestDecideUnknownRoleNeverMatches(t *testing.T) {
	sess := &session.Session{UserID: 2, RawRole: "manager", Role: domain.RoleUnknown}
	d := auth.Decide(sess, []domain.Role{domain.RoleUnknown}, "/admin", "/auth/login", "redirect")
	require.False(t, d.Allowed)
}

// testApp wires the principal middleware, the guard layer, and a minimal
// login handler around an in-memory session store.
func testApp(t *testing.T) (*fiber.App, *session.Store) {
	t.Helper()

	store := session.NewStore(session.NewMemoryStorage(), zap.NewNop())
	tokens := auth.NewTokenManager("test-secret", 60)
	guard := auth.NewGuard(store, testSessionCfg)
	mw := auth.NewMiddleware(store, tokens, testSessionCfg.CookieName)

	app := fiber.New()
	app.Use(mw.Handle)

	app.Post("/auth/login", guard.RedirectAuthenticated(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	app.Get("/auth/register", guard.RedirectAuthenticated(), func(c *fiber.Ctx) error {
		return c.SendString("register page")
	})

	admin := app.Group("/admin", guard.ForModule(auth.RouteRule{Roles: []string{"admin"}}))
	admin.Get("/", guard.ForRoute(auth.RouteRule{Roles: []string{"admin"}}), func(c *fiber.Ctx) error {
		return c.SendString("admin home")
	})

	agent := app.Group("/agent", guard.ForModule(auth.RouteRule{Roles: []string{"agent"}}))
	agent.Get("/", func(c *fiber.Ctx) error { return c.SendString("agent home") })

	account := app.Group("/account", guard.ForModule(auth.RouteRule{}))
	account.Get("/profile", func(c *fiber.Ctx) error { return c.SendString("profile") })

	return app, store
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	app, _ := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/auth/login?redirect=%2Fadmin%2F", resp.Header.Get("Location"))
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	app, store := testApp(t)
	require.NoError(t, store.Commit(context.Background(), "tok-admin", adminSession()))

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req.AddCookie(&http.Cookie{Name: "realty_session", Value: "tok-admin"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuardDeniesWrongRole(t *testing.T) {
	app, store := testApp(t)
	require.NoError(t, store.Commit(context.Background(), "tok-admin", adminSession()))

	req := httptest.NewRequest(http.MethodGet, "/agent/", nil)
	req.AddCookie(&http.Cookie{Name: "realty_session", Value: "tok-admin"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/auth/login?redirect=%2Fagent%2F", resp.Header.Get("Location"))
}

func TestGuardEmptyRolesAcceptsAnyAuthenticated(t *testing.T) {
	app, store := testApp(t)

	client := &session.Session{UserID: 3, RawRole: "Cliente", Role: domain.RoleClient}
	require.NoError(t, store.Commit(context.Background(), "tok-client", client))

	req := httptest.NewRequest(http.MethodGet, "/account/profile", nil)
	req.AddCookie(&http.Cookie{Name: "realty_session", Value: "tok-client"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	anon := httptest.NewRequest(http.MethodGet, "/account/profile", nil)
	resp, err = app.Test(anon)
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestGuardReturnsJSONForAPIClients(t *testing.T) {
	app, _ := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRedirectAuthenticatedSendsClientHome(t *testing.T) {
	app, store := testApp(t)

	client := &session.Session{UserID: 3, RawRole: "Cliente", Role: domain.RoleClient}
	require.NoError(t, store.Commit(context.Background(), "tok-client", client))

	req := httptest.NewRequest(http.MethodGet, "/auth/register", nil)
	req.AddCookie(&http.Cookie{Name: "realty_session", Value: "tok-client"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/client", resp.Header.Get("Location"))
}

func TestRedirectAuthenticatedAllowsAnonymous(t *testing.T) {
	app, _ := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/register", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestRedirectBackAfterLogin walks the full deny-login-retry loop: an
// anonymous caller is bounced from /admin/ to the login path with the
// attempted URL attached, authenticates, and the retried target passes.
func TestRedirectBackAfterLogin(t *testing.T) {
	app, store := testApp(t)

	denied := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	resp, err := app.Test(denied)
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	location, err := resp.Location()
	require.NoError(t, err)
	require.Equal(t, "/auth/login", location.Path)
	target := location.Query().Get("redirect")
	require.Equal(t, "/admin/", target)

	// Successful login commits the session the way the login flow does.
	require.NoError(t, store.Commit(context.Background(), "tok-admin", adminSession()))

	retry := httptest.NewRequest(http.MethodGet, target, nil)
	retry.AddCookie(&http.Cookie{Name: "realty_session", Value: "tok-admin"})
	resp, err = app.Test(retry)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStaleCookieCleared(t *testing.T) {
	app, _ := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/account/profile", nil)
	req.AddCookie(&http.Cookie{Name: "realty_session", Value: "tok-gone"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

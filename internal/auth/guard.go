package auth

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/session"
)

// RouteRule is the authorization metadata attached to a protected route or
// subtree. Roles lists acceptable roles in any backend spelling; an empty
// list means any authenticated identity is accepted.
type RouteRule struct {
	Roles []string
}

// Decision is the outcome of a guard evaluation: pass-through or an explicit
// alternate destination. A guard never produces anything else.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Decide applies the shared guard algorithm to a session snapshot, a route's
// required roles, and the attempted URL. An absent session and a wrong-role
// session produce the same login redirect; no distinct forbidden state is
// surfaced in-app.
func Decide(sess *session.Session, required []domain.Role, attempted, loginPath, redirectParam string) Decision {
	if sess == nil {
		return Decision{RedirectTo: loginRedirect(loginPath, redirectParam, attempted)}
	}
	if len(required) == 0 {
		return Decision{Allowed: true}
	}
	for _, role := range required {
		if domain.Canonical(role) && role == sess.Role {
			return Decision{Allowed: true}
		}
	}
	return Decision{RedirectTo: loginRedirect(loginPath, redirectParam, attempted)}
}

func loginRedirect(loginPath, param, attempted string) string {
	if attempted == "" || attempted == loginPath {
		return loginPath
	}
	return loginPath + "?" + param + "=" + url.QueryEscape(attempted)
}

// Guard adapts the pure decision to fiber handlers. All three gate variants
// share Decide and the session store; they differ only in where the
// attempted URL is read from.
type Guard struct {
	store         *session.Store
	cookieName    string
	loginPath     string
	redirectParam string
}

// NewGuard builds the guard layer over the session store.
func NewGuard(store *session.Store, cfg config.SessionConfig) *Guard {
	return &Guard{
		store:         store,
		cookieName:    cfg.CookieName,
		loginPath:     cfg.LoginPath,
		redirectParam: cfg.RedirectParam,
	}
}

// ForModule gates a mounted route subtree, evaluated before any route in the
// group runs. Reads the full original URL as the redirect-back target.
func (g *Guard) ForModule(rule RouteRule) fiber.Handler {
	required := normalizeRule(rule)
	return func(c *fiber.Ctx) error {
		return g.resolve(c, required, c.OriginalURL())
	}
}

// ForRoute gates a single route at activation time.
func (g *Guard) ForRoute(rule RouteRule) fiber.Handler {
	required := normalizeRule(rule)
	return func(c *fiber.Ctx) error {
		return g.resolve(c, required, c.OriginalURL())
	}
}

// ForChildren gates a nested group. It reads the matched path rather than
// the raw URL, so the redirect-back target excludes the query string.
func (g *Guard) ForChildren(rule RouteRule) fiber.Handler {
	required := normalizeRule(rule)
	return func(c *fiber.Ctx) error {
		return g.resolve(c, required, c.Path())
	}
}

// RedirectAuthenticated is the inverse guard for the login, registration and
// password-recovery pages: an authenticated caller with a canonical role is
// sent to that role's home instead. Anonymous callers pass through.
func (g *Guard) RedirectAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFromContext(c)
		if sess != nil {
			if home, ok := domain.HomePath(sess.Role); ok {
				return c.Redirect(home, fiber.StatusSeeOther)
			}
		}
		return c.Next()
	}
}

func (g *Guard) resolve(c *fiber.Ctx, required []domain.Role, attempted string) error {
	sess := SessionFromContext(c)
	decision := Decide(sess, required, attempted, g.loginPath, g.redirectParam)
	if decision.Allowed {
		return c.Next()
	}
	if wantsJSON(c) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": fiber.Map{
				"code":        "UNAUTHORIZED",
				"message":     http.StatusText(http.StatusUnauthorized),
				"redirect_to": decision.RedirectTo,
			},
		})
	}
	return c.Redirect(decision.RedirectTo, fiber.StatusSeeOther)
}

func normalizeRule(rule RouteRule) []domain.Role {
	required := make([]domain.Role, 0, len(rule.Roles))
	for _, raw := range rule.Roles {
		required = append(required, domain.NormalizeRole(raw))
	}
	return required
}

func wantsJSON(c *fiber.Ctx) bool {
	if c.Get(fiber.HeaderAuthorization) != "" {
		return true
	}
	return c.Accepts("text/html", "application/json") == "application/json"
}

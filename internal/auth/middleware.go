package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/session"
)

const principalKey = "auth_principal"

// Principal is the resolved caller identity for one request.
type Principal struct {
	Session *session.Session
	// Token is the session cookie token; empty for bearer-only callers.
	Token string
}

// Middleware resolves the caller's session from the session cookie or a
// bearer token. It only resolves; enforcement belongs to the guard layer,
// so unauthenticated requests continue down the chain.
type Middleware struct {
	store      *session.Store
	tokens     *TokenManager
	cookieName string
}

// NewMiddleware constructs the principal resolver.
func NewMiddleware(store *session.Store, tokens *TokenManager, cookieName string) *Middleware {
	return &Middleware{store: store, tokens: tokens, cookieName: cookieName}
}

// Handle loads the principal into the request context.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if token := c.Cookies(m.cookieName); token != "" {
		sess, err := m.store.Get(c.UserContext(), token)
		if err != nil {
			return err
		}
		if sess == nil {
			// Stale cookie pointing at a cleared or discarded session.
			c.ClearCookie(m.cookieName)
		} else {
			c.Locals(principalKey, &Principal{Session: sess, Token: token})
			return c.Next()
		}
	}

	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if claims, err := m.tokens.Parse(parts[1]); err == nil {
				c.Locals(principalKey, &Principal{Session: &session.Session{
					UserID:  claims.UserID,
					Name:    claims.Name,
					RawRole: string(claims.Role),
					Role:    domain.NormalizeRole(string(claims.Role)),
				}})
			}
		}
	}

	return c.Next()
}

// PrincipalFromContext retrieves the resolved principal, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// SessionFromContext returns the caller's session snapshot, or nil when the
// request is anonymous.
func SessionFromContext(c *fiber.Ctx) *session.Session {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		return nil
	}
	return principal.Session
}

package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-mx/soporte/internal/domain"
)

const principalKey = "auth_principal"

// Principal carries the resolved caller identity for a request.
type Principal struct {
	UserID string
	Role   domain.UserRole
}

// Middleware resolves an optional bearer token into a Principal. Ticket
// routes are not gated; the principal is informational when present.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle attaches a Principal to the request context when a valid bearer
// token is supplied, and passes the request through otherwise.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return c.Next()
	}
	claims, err := m.tokens.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return c.Next()
	}
	c.Locals(principalKey, &Principal{UserID: claims.Subject, Role: claims.Role})
	return c.Next()
}

// PrincipalFromContext returns the request's principal, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(principalKey).(*Principal)
	return principal, ok && principal != nil
}

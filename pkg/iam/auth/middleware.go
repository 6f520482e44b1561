package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "auth_claims"

// TokenMiddleware guards routes with bearer tokens. When disabled every
// request passes and no claims are set.
type TokenMiddleware struct {
	tokens  *JWTService
	enabled bool
}

func NewTokenMiddleware(tokens *JWTService, enabled bool) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens, enabled: enabled}
}

func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.enabled {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return ErrMissingToken()
		}

		claims, err := m.tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			return ErrInvalidToken().WithDetail("reason", err.Error())
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireScope must run after Authenticate.
func (m *TokenMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.enabled {
			return c.Next()
		}
		claims, ok := GetClaims(c)
		if !ok {
			return ErrMissingToken()
		}
		if !HasScope(claims.Scopes, scope) {
			return ErrInsufficientScope().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

func GetClaims(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok
}

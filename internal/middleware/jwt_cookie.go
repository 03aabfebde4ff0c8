package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/utils"
)

const CookieName = "jm_token"

// tokenFrom reads the session cookie, falling back to a Bearer header for
// non-browser clients.
func tokenFrom(c *fiber.Ctx) string {
	if tok := c.Cookies(CookieName); tok != "" {
		return tok
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

func JWTFromCookie(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := tokenFrom(c)
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		token, _, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("user", token)
		return c.Next()
	}
}

// OptionalJWT attaches the session when a valid one is present and lets
// anonymous requests through.
func OptionalJWT(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenStr := tokenFrom(c); tokenStr != "" {
			if token, claims, err := utils.ParseJWT(secret, tokenStr); err == nil {
				c.Locals("user", token)
				c.Locals("userId", strings.TrimSpace(claims.UserID))
				c.Locals("role", strings.ToLower(strings.TrimSpace(claims.Role)))
			}
		}
		return c.Next()
	}
}

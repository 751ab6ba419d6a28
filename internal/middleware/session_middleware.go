package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionCookie correlates an anonymous browser to its cart contents,
// independent of authentication.
const SessionCookie = "cart_session"

const sessionMaxAge = 30 * 24 * 60 * 60 // seconds

// CartSession lazily issues an opaque session key cookie and places the key
// in the request locals for the cart and checkout handlers.
func CartSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Cookies(SessionCookie)
		if key == "" {
			key = uuid.New().String()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    key,
				Path:     "/",
				MaxAge:   sessionMaxAge,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals("session_key", key)
		return c.Next()
	}
}

// SessionKey extracts the session key placed by CartSession.
func SessionKey(c *fiber.Ctx) string {
	if key, ok := c.Locals("session_key").(string); ok {
		return key
	}
	return ""
}

package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/auth"
)

// contextSubjectKey is the fiber.Locals key under which the authenticated
// token subject is stored.
const contextSubjectKey = "admin_subject"

// RequireAdmin builds a middleware that rejects requests without a valid
// admin bearer token. It guards POST /feedback and GET /term/:term/history;
// scoring endpoints stay open since they expose no stored history or
// reviewer feedback.
func RequireAdmin(jwtService *auth.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.ExtractTokenFromBearer(c.Get("Authorization"))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals(contextSubjectKey, claims.Subject)
		return c.Next()
	}
}

// Subject returns the authenticated token subject for the current request,
// or "" if the request was not authenticated.
func Subject(c *fiber.Ctx) string {
	if subject, ok := c.Locals(contextSubjectKey).(string); ok {
		return subject
	}
	return ""
}

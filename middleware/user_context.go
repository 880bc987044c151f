package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the caller identity forwarded by the
// Gateway (X-Profile-ID, X-User-Roles) and attaches it to the request.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		profileID := c.Get("X-Profile-ID")
		rolesStr := c.Get("X-User-Roles")

		var roles []string
		if rolesStr != "" {
			for _, r := range strings.Split(rolesStr, ",") {
				r = strings.TrimSpace(r)
				if r != "" {
					roles = append(roles, r)
				}
			}
		}

		c.Locals("profile_id", profileID)
		c.Locals("user_roles", roles)
		return c.Next()
	}
}

// AdminOnlyMiddleware gates the verification and catalog-management routes.
// The Gateway resolves roles; this only checks what it forwarded.
func AdminOnlyMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals("user_roles").([]string)
		for _, r := range roles {
			if r == "admin" {
				return c.Next()
			}
		}
		log.Printf("🚫 [ADMIN] Non-admin request rejected for %s", c.Path())
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "admin role required",
		})
	}
}

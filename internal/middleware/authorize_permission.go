package middleware

import (
	"nexus-backend/internal/constants"
	"nexus-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorizePermission checks the principal's role against the fixed
// permission table. Unconfigured permission is a server error; a role outside
// the allowed set is 403.
func AuthorizePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return response.Unauthorized(c, "Invalid or expired token")
		}
		if _, configured := constants.PermissionRoles[permission]; !configured {
			return response.Error(c, "Permission configuration error", fiber.StatusInternalServerError, nil)
		}
		if !constants.HasPermission(p.Role, permission) {
			return response.Error(c, "Insufficient permissions", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}

// RequireMinimumRole gates a route on the role hierarchy rather than a named
// permission.
func RequireMinimumRole(minimum string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return response.Unauthorized(c, "Invalid or expired token")
		}
		if !constants.HasMinimumRole(p.Role, minimum) {
			return response.Error(c, "Insufficient permissions", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}

package middleware

import (
	"errors"
	"strings"

	"nexus-backend/internal/domain"
	"nexus-backend/internal/pkg/response"
	"nexus-backend/internal/tokens"
	"nexus-backend/internal/user/policies"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const principalLocal = "principal"

// AuthConfig wires the token codec and the user store into the bearer guard.
type AuthConfig struct {
	Tokens *tokens.Service
	DB     *gorm.DB
	Rdb    *redis.Client
}

// RequireAuth authenticates the bearer token into a request principal. Every
// failure — missing header, bad signature, expiry, wrong token kind, revoked
// or deleted user — reads as the same 401.
func RequireAuth(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return response.Unauthorized(c, "Invalid or expired token")
		}
		userID, orgID, issuedAt, err := cfg.Tokens.Verify(strings.TrimPrefix(header, "Bearer "), tokens.Access)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}
		if policies.TokensInvalidatedSince(c.Context(), cfg.Rdb, userID.String(), issuedAt) {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		var u domain.User
		if err := cfg.DB.WithContext(c.Context()).Where("id = ?", userID).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "Invalid or expired token")
			}
			return response.Error(c, "Service unavailable", fiber.StatusServiceUnavailable, nil)
		}
		// The org binding in the token must still hold; a stale token for a
		// re-created account does not authenticate.
		if u.OrganizationID != orgID {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		c.Locals(principalLocal, domain.PrincipalFromUser(&u))
		return c.Next()
	}
}

// GetPrincipal returns the authenticated principal set by RequireAuth.
func GetPrincipal(c *fiber.Ctx) (domain.Principal, bool) {
	p, ok := c.Locals(principalLocal).(domain.Principal)
	return p, ok
}

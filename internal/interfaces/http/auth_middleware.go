package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/itcguard/itc-api/internal/application/dto"
	pkgjwt "github.com/itcguard/itc-api/pkg/jwt"
)

const (
	localUserID     = "user_id"
	localBusinessID = "business_id"
	localRole       = "role"
)

// AuthMiddleware requires a valid Bearer token and stores its identity in locals.
func AuthMiddleware(secret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "MISSING_TOKEN", Message: "Authorization header with Bearer token required",
			})
		}
		id, err := pkgjwt.Parse(secret, issuer, strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "INVALID_TOKEN", Message: "invalid or expired token",
			})
		}
		c.Locals(localUserID, id.UserID)
		c.Locals(localBusinessID, id.BusinessID)
		c.Locals(localRole, id.Role)
		return c.Next()
	}
}

// RequireRole lets the request through only when the token role is one of roles.
// Must run after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if _, ok := allowed[GetRole(c)]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "role not allowed for this operation",
			})
		}
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	v, _ := c.Locals(key).(string)
	return v
}

// GetUserID returns the authenticated user, or "" when auth is disabled.
func GetUserID(c *fiber.Ctx) string { return localString(c, localUserID) }

// GetBusinessID returns the business the token belongs to.
func GetBusinessID(c *fiber.Ctx) string { return localString(c, localBusinessID) }

// GetRole returns the token role.
func GetRole(c *fiber.Ctx) string { return localString(c, localRole) }

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/db"
	"github.com/servenow/servenow-backend/models"
	"github.com/servenow/servenow-backend/redis"
	"github.com/servenow/servenow-backend/utils"
)

// Locals keys populated for authenticated requests.
const (
	LocalUserID        = "userID"
	LocalEmail         = "email"
	LocalRoles         = "roles"
	LocalAuthenticated = "authenticated"
	LocalToken         = "token"
)

// Authenticate is the per-request bearer filter. A missing, malformed or
// expired token does not fail the request here; the request simply stays
// unauthenticated and the authorization layer rejects it if the route
// needs credentials. A valid token is then checked against the user row
// it names, so the principal reflects the account's current state. The
// one hard failure is presenting a refresh token as an authentication
// credential.
func Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Next()
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			return c.Next()
		}

		if utils.TokenType(claims) == utils.TokenTypeRefresh {
			// The refresh endpoint is the one place a refresh token
			// belongs in the Authorization header.
			if c.Path() == "/auth/refresh" {
				return c.Next()
			}
			return utils.Error(c, fiber.StatusUnauthorized, "Refresh token cannot be used for authentication")
		}
		if !utils.IsAccessToken(claims) {
			return c.Next()
		}
		if redis.IsTokenRevoked(tokenString) {
			return c.Next()
		}

		// A token only authenticates while the account behind it is
		// alive: soft-deleted or disabled users stay unauthenticated
		// even with an unexpired token.
		var user models.User
		if db.DB.Preload("Roles").
			Where("email = ? AND is_active = ?", utils.ExtractSubject(claims), true).
			First(&user).RowsAffected == 0 {
			return c.Next()
		}
		if !user.Enabled {
			return c.Next()
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalEmail, user.Email)
		c.Locals(LocalRoles, user.RoleNames())
		c.Locals(LocalAuthenticated, true)
		c.Locals(LocalToken, tokenString)

		return c.Next()
	}
}

// IsAuthenticated reports whether Authenticate attached a principal.
func IsAuthenticated(c *fiber.Ctx) bool {
	v, ok := c.Locals(LocalAuthenticated).(bool)
	return ok && v
}

// UserID returns the authenticated user's id, or 0 when unauthenticated.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}

func Email(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalEmail).(string)
	return email
}

func Roles(c *fiber.Ctx) []string {
	roles, _ := c.Locals(LocalRoles).([]string)
	return roles
}

func HasRole(c *fiber.Ctx, name string) bool {
	for _, role := range Roles(c) {
		if role == name {
			return true
		}
	}
	return false
}

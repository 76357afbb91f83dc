package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/models"
	"github.com/servenow/servenow-backend/utils"
)

// Rule maps (method, path pattern) to the role set allowed through.
// Method "*" matches any verb. Pattern segments starting with ":" match a
// single path segment; a trailing "*" matches the rest of the path.
// Public rules skip authentication entirely; a nil role set on a
// non-public rule means "any authenticated user".
type Rule struct {
	Method  string
	Pattern string
	Roles   []string
	Public  bool
}

// Policy is evaluated top to bottom, first match wins. Routes that match
// no rule require an authenticated principal with any role.
var Policy = []Rule{
	{Method: "GET", Pattern: "/", Public: true},
	{Method: "GET", Pattern: "/health", Public: true},
	{Method: "*", Pattern: "/auth/*", Public: true},

	// Public browsing.
	{Method: "GET", Pattern: "/categories/*", Public: true},
	{Method: "GET", Pattern: "/categories", Public: true},
	{Method: "GET", Pattern: "/services/*", Public: true},
	{Method: "GET", Pattern: "/services", Public: true},
	{Method: "GET", Pattern: "/search/*", Public: true},
	{Method: "GET", Pattern: "/search", Public: true},
	{Method: "GET", Pattern: "/reviews/service/:id", Public: true},
	{Method: "GET", Pattern: "/reviews/provider/:id", Public: true},
	{Method: "GET", Pattern: "/users/providers", Public: true},
	{Method: "GET", Pattern: "/users/check-email", Public: true},
	{Method: "GET", Pattern: "/users/check-phone", Public: true},

	// Own-account operations, any authenticated role.
	{Method: "*", Pattern: "/users/profile"},
	{Method: "*", Pattern: "/users/profile/picture"},
	{Method: "PUT", Pattern: "/users/change-password"},
	{Method: "GET", Pattern: "/users/nearby"},

	// Admin and moderator user management.
	{Method: "GET", Pattern: "/users/search", Roles: []string{models.RoleAdmin, models.RoleModerator}},
	{Method: "GET", Pattern: "/users/stats", Roles: []string{models.RoleAdmin}},
	{Method: "GET", Pattern: "/users/customers", Roles: []string{models.RoleAdmin, models.RoleModerator}},
	{Method: "GET", Pattern: "/users/role/:name", Roles: []string{models.RoleAdmin, models.RoleModerator}},
	{Method: "PUT", Pattern: "/users/:id/verify-email", Roles: []string{models.RoleAdmin}},
	{Method: "PUT", Pattern: "/users/:id/verify-phone", Roles: []string{models.RoleAdmin}},
	{Method: "PUT", Pattern: "/users/:id/toggle-status", Roles: []string{models.RoleAdmin}},
	{Method: "DELETE", Pattern: "/users/:id", Roles: []string{models.RoleAdmin}},
	{Method: "GET", Pattern: "/users/:id", Roles: []string{models.RoleAdmin, models.RoleModerator}},
	{Method: "GET", Pattern: "/users", Roles: []string{models.RoleAdmin, models.RoleModerator}},

	// Category management.
	{Method: "POST", Pattern: "/categories", Roles: []string{models.RoleAdmin}},
	{Method: "PUT", Pattern: "/categories/:id", Roles: []string{models.RoleAdmin}},
	{Method: "DELETE", Pattern: "/categories/:id", Roles: []string{models.RoleAdmin}},

	// Service management.
	{Method: "POST", Pattern: "/services", Roles: []string{models.RoleProvider, models.RoleAdmin}},
	{Method: "PUT", Pattern: "/services/:id", Roles: []string{models.RoleProvider, models.RoleAdmin}},
	{Method: "DELETE", Pattern: "/services/:id", Roles: []string{models.RoleProvider, models.RoleAdmin}},

	// Booking lifecycle.
	{Method: "POST", Pattern: "/bookings", Roles: []string{models.RoleCustomer}},
	{Method: "GET", Pattern: "/bookings/customer", Roles: []string{models.RoleCustomer}},
	{Method: "GET", Pattern: "/bookings/provider", Roles: []string{models.RoleProvider}},
	{Method: "PUT", Pattern: "/bookings/:id/accept", Roles: []string{models.RoleProvider}},
	{Method: "PUT", Pattern: "/bookings/:id/reject", Roles: []string{models.RoleProvider}},
	{Method: "PUT", Pattern: "/bookings/:id/start", Roles: []string{models.RoleProvider}},
	{Method: "PUT", Pattern: "/bookings/:id/complete", Roles: []string{models.RoleProvider}},
	{Method: "PUT", Pattern: "/bookings/:id/cancel", Roles: []string{models.RoleCustomer, models.RoleAdmin}},

	// Payments.
	{Method: "POST", Pattern: "/payments", Roles: []string{models.RoleCustomer}},

	// Reviews. The customer listing rule must precede the public single
	// review rule or ":id" would swallow "customer".
	{Method: "POST", Pattern: "/reviews", Roles: []string{models.RoleCustomer}},
	{Method: "GET", Pattern: "/reviews/customer", Roles: []string{models.RoleCustomer}},
	{Method: "PUT", Pattern: "/reviews/:id/response", Roles: []string{models.RoleProvider}},
	{Method: "GET", Pattern: "/reviews/:id", Public: true},
}

// Authorize evaluates the policy table after authentication ran. Missing
// credentials on a protected route yield 401, a role mismatch yields 403.
func Authorize() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rule := matchRule(c.Method(), c.Path())

		if rule != nil && rule.Public {
			return c.Next()
		}
		if !IsAuthenticated(c) {
			return utils.Error(c, fiber.StatusUnauthorized, "Authentication required")
		}
		if rule == nil || len(rule.Roles) == 0 {
			return c.Next()
		}
		for _, required := range rule.Roles {
			if HasRole(c, required) {
				return c.Next()
			}
		}
		return utils.Error(c, fiber.StatusForbidden, "You don't have permission to perform this action")
	}
}

func matchRule(method, path string) *Rule {
	for i := range Policy {
		rule := &Policy[i]
		if rule.Method != "*" && rule.Method != method {
			continue
		}
		if MatchPath(rule.Pattern, path) {
			return rule
		}
	}
	return nil
}

// MatchPath matches a request path against a policy pattern.
func MatchPath(pattern, path string) bool {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	for i, part := range patternParts {
		if part == "*" {
			// Trailing wildcard needs at least one remaining segment.
			return len(pathParts) > i
		}
		if i >= len(pathParts) {
			return false
		}
		if strings.HasPrefix(part, ":") {
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}
	return len(patternParts) == len(pathParts)
}

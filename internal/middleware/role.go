package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Roles recognized in the institute's tokens.  USER may browse and book;
// ADMIN additionally manages reservation states from the staff dashboard.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// RequireRole returns a middleware enforcing that the authenticated user
// carries one of the given roles in its "role" claim.  It assumes JWTAuth
// already ran and stored the role in the context; a missing or disallowed
// role aborts the request with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/gms2/gms-api/internal/core/domain"
)

// RBAC lets the request through when the caller holds any of allowedRoles.
// It must run after Auth. Refusals are returned as domain.ErrForbidden so the
// central error handler writes the 403.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get("roles").([]string)
			for _, role := range roles {
				if _, ok := allowed[role]; ok {
					return next(c)
				}
			}
			return domain.ErrForbidden
		}
	}
}

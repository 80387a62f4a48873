package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

// RBAC restricts a route to sessions carrying one of the allowed profiles.
// It must run after RequireSession.
func RBAC(allowedProfiles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if !sess.HasProfile(allowedProfiles...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

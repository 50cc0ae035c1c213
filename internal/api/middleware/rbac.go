package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authy/user-management-api/internal/api/metrics"
	"github.com/authy/user-management-api/internal/core/domain"
)

// RBAC enforces role-based access control: the request proceeds iff the
// authenticated principal's role is a member of allowedRoles. Membership is
// exact; admin is not an implicit superset of user-only operations.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
			}
			if _, ok := allowed[principal.Role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues(c.Path()).Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

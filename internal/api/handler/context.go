package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authy/user-management-api/internal/api/middleware"
	"github.com/authy/user-management-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fast-fails before any service call. Its presence proves the middleware
// ran; a handler reached without it is a wiring bug, answered with 401
// rather than a panic.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}

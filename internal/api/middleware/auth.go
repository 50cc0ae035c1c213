package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/authy/user-management-api/internal/api/metrics"
	"github.com/authy/user-management-api/internal/auth"
	"github.com/authy/user-management-api/internal/core/domain"
)

// PrincipalKey is the echo.Context key under which the authenticated
// principal is stored. Auth is the only writer.
const PrincipalKey = "principal"

// Every rejection returns the same body; the internal reason is only
// logged and counted. Distinct messages would leak which validation step
// failed.
const unauthorizedMessage = "unauthorized"

// Auth validates the bearer token and injects the resolved principal into
// the request context. All rejections are a uniform 401.
func Auth(codec *auth.Codec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return reject(c, log, "missing_header", nil)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return reject(c, log, "invalid_header", nil)
			}

			principal, err := codec.Validate(parts[1])
			if err != nil {
				reason := "token_invalid"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "token_expired"
				}
				return reject(c, log, reason, err)
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

func reject(c echo.Context, log zerolog.Logger, reason string, err error) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	log.Debug().
		Err(err).
		Str("reason", reason).
		Str("path", c.Path()).
		Msg("request rejected by authentication gate")
	return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
}

// PrincipalFromContext returns the principal stored by Auth, or false if
// the request never passed the authentication gate.
func PrincipalFromContext(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	return p, ok
}

package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"weave_web/internal/services"
)

// AuthenticatedKey is the echo context key holding the visitor's signed-in flag.
const AuthenticatedKey = "authenticated"

// LoadAuthState asks the backend whether the visitor is signed in and stores
// the answer under AuthenticatedKey. Failures are logged and count as not
// signed in; the visitor never sees them.
func LoadAuthState(checker services.AuthChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			authenticated, err := checker.CheckAuth(ctx, ForwardedCookies(c))
			if err != nil {
				// The browser went away; there is nobody left to render for.
				if ctx.Err() != nil {
					slog.Debug("Auth check abandoned", "path", c.Request().URL.Path, "error", ctx.Err())
					return nil
				}
				slog.Warn("Error checking auth", "request_id", c.Response().Header().Get(echo.HeaderXRequestID), "error", err)
				authenticated = false
			}

			c.Set(AuthenticatedKey, authenticated)
			return next(c)
		}
	}
}

// IsAuthenticated reads the flag set by LoadAuthState.
func IsAuthenticated(c echo.Context) bool {
	authenticated, _ := c.Get(AuthenticatedKey).(bool)
	return authenticated
}

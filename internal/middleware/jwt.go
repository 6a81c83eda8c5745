package middleware // package middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticketflow/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer session
// token and injects the authenticated principal into the request
// context. The provided secret must match the one used when issuing
// tokens. Handlers behind this middleware read the principal via
// c.Get("user_id") (uint64) and c.Get("email") (string).
//
// Every request is authenticated independently; there is no server-side
// session state and no refresh flow. An expired or forged token gets the
// same generic 401 so callers cannot probe which failure occurred.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				// utils.ErrTokenExpired and utils.ErrTokenInvalid collapse
				// into one response on purpose.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			return next(c)
		}
	}
}

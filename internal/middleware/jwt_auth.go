package middleware

import (
	"errors"
	"net/http"
	"strings"

	"chirp/internal/auth"
	"chirp/internal/metrics"

	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

// JWTAuth resolves the caller's identity from the Authorization header and
// stores it as a typed context value. Every failure kind yields the same
// 401 body; the kind is only recorded in metrics.
func JWTAuth(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := ""
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
					metrics.IncTokenRejection("malformed_header")
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
				}
				tokenString = parts[1]
			}

			identity, err := tokens.Verify(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenMissing):
					metrics.IncTokenRejection("missing")
				case errors.Is(err, auth.ErrTokenExpired):
					metrics.IncTokenRejection("expired")
				default:
					metrics.IncTokenRejection("invalid")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity resolved by JWTAuth for this request.
func CurrentIdentity(c echo.Context) (auth.Identity, bool) {
	identity, ok := c.Get(identityKey).(auth.Identity)
	return identity, ok
}

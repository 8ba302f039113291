package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/youapp/profile-api/internal/core/domain"
	"github.com/youapp/profile-api/internal/core/ports"
)

// Auth validates the bearer access token and injects its claims into the
// request context. Revoked tokens are rejected even when their signature and
// expiry are still valid.
func Auth(issuer ports.TokenIssuer, revoked ports.RevocationRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := issuer.VerifyAccess(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token is expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "token is invalid")
			}

			isRevoked, err := revoked.IsRevoked(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if isRevoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is invalid or expired")
			}

			c.Set("access_token", token)
			c.Set("account_id", claims.AccountID)
			c.Set("username", claims.Username)
			c.Set("email", claims.Email)

			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/youapp/profile-api/internal/core/domain"
	"github.com/youapp/profile-api/internal/core/ports"
)

// Refresh validates the bearer refresh token and injects its claims plus the
// raw token into the request context. The raw token is needed downstream for
// the stored-hash comparison during rotation.
func Refresh(issuer ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := issuer.VerifyRefresh(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token is expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "token is invalid")
			}

			c.Set("refresh_token", token)
			c.Set("account_id", claims.AccountID)

			return next(c)
		}
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxAccountID extracts the account id injected by the Auth or Refresh
// middleware. Presence proves the guard ran; reject outright otherwise.
func ctxAccountID(c echo.Context) (string, error) {
	accountID, _ := c.Get("account_id").(string)
	if accountID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return accountID, nil
}

// ctxToken returns a raw token stashed under key by a guard middleware.
func ctxToken(c echo.Context, key string) string {
	token, _ := c.Get(key).(string)
	return token
}

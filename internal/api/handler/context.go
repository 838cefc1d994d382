package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware.
// A missing role means the middleware did not run; reject rather than
// trusting an unauthenticated request.
func ctxIdentity(c echo.Context) (userID int64, username, role string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return 0, "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ = c.Get("username").(string)
	userID, _ = c.Get("user_id").(int64)
	return userID, username, role, nil
}

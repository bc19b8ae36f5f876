package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// claimedEmail extracts the email claim injected by the Auth middleware. An
// empty claim means the middleware did not run or the token carried no
// identity; either way the request is unusable.
func claimedEmail(c echo.Context) (string, error) {
	email, _ := c.Get("email").(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}

// requireOwnEmail enforces the ownership invariant: a request parameterized
// by an email may only act on the authenticated identity's own records. The
// check runs before any store lookup so a mismatched caller learns nothing
// about other users' data.
func requireOwnEmail(c echo.Context, email string) error {
	claimed, err := claimedEmail(c)
	if err != nil {
		return err
	}
	if email != claimed {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
	}
	return nil
}

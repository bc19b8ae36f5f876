package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learningcamp/enrollment-api/internal/api/metrics"
	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

// RequireRole gates a route on the role stored in the directory store. The
// role is looked up fresh on every request rather than trusted from the
// token, so a revocation takes effect without waiting for token expiry.
// Must run after Auth.
func RequireRole(users ports.UserRepository, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get("email").(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := users.FindByEmail(c.Request().Context(), email)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return err
			}
			if user == nil || user.Role != role {
				metrics.RoleDenialsTotal.WithLabelValues(role).Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Mukesh1q2/LIMS-sub001/core/user"
)

// requirePermission guards a route group with the static permission
// table, keyed on the caller's role claim.
func requirePermission(resource, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if user.Can(claims.Role, resource, action) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

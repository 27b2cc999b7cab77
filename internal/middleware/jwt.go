package middleware // middleware adapts the auth core and the response cache to echo

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bike-catalog-admin/internal/auth"
	"github.com/iliyamo/bike-catalog-admin/internal/model"
)

// Details returned in 401 bodies. They are fixed strings so that no sub-cause
// of an authentication failure reaches the client.
const (
	DetailNotAuthenticated   = "Not authenticated"
	DetailInvalidToken       = "Could not validate credentials"
	DetailInvalidCredentials = "Incorrect username or password"
	DetailInternal           = "internal server error"
)

// adminKey is the echo context key holding the authenticated *model.AdminUser.
const adminKey = "admin"

// lookupTimeout bounds the admin lookup performed for every request.
const lookupTimeout = 5 * time.Second

// AdminAuth returns an echo middleware that runs the auth gate on the
// Authorization header and stores the resolved admin in the context.
// Handlers behind it read the admin with CurrentAdmin.
func AdminAuth(gate *auth.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), lookupTimeout)
			defer cancel()

			admin, err := gate.Authenticate(ctx, c.Request().Header.Get(echo.HeaderAuthorization))
			switch {
			case err == nil:
			case errors.Is(err, auth.ErrUnauthenticated):
				return Unauthorized(c, DetailNotAuthenticated)
			case errors.Is(err, auth.ErrInvalidToken):
				logrus.WithError(err).Debug("rejected bearer token")
				return Unauthorized(c, DetailInvalidToken)
			default:
				logrus.WithError(err).Error("authenticate admin")
				return c.JSON(http.StatusInternalServerError, echo.Map{"detail": DetailInternal})
			}

			c.Set(adminKey, admin)
			return next(c)
		}
	}
}

// CurrentAdmin returns the admin stored by AdminAuth.
func CurrentAdmin(c echo.Context) (*model.AdminUser, bool) {
	a, ok := c.Get(adminKey).(*model.AdminUser)
	return a, ok && a != nil
}

// Unauthorized writes a 401 with the bearer challenge header.
func Unauthorized(c echo.Context, detail string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"detail": detail})
}

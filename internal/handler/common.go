package handler // handler defines the HTTP handlers of the admin API

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bike-catalog-admin/internal/middleware"
	"github.com/iliyamo/bike-catalog-admin/internal/queue"
)

const (
	// requestTimeout bounds the database work of a single request.
	requestTimeout = 5 * time.Second
	// publishTimeout bounds event publication after a write.
	publishTimeout = 3 * time.Second

	defaultLimit = 100
	maxLimit     = 1000
	maxNameLen   = 100
)

// detail writes the {"detail": msg} error body used across the API.
func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"detail": msg})
}

// internalError logs err and answers 500 without exposing it.
func internalError(c echo.Context, op string, err error) error {
	logrus.WithError(err).WithField("op", op).Error("request failed")
	return detail(c, http.StatusInternalServerError, middleware.DetailInternal)
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// queryID reads an optional positive integer query parameter. present is
// false when the parameter is absent.
func queryID(c echo.Context, name string) (id uint64, present, ok bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, false, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, true, false
	}
	return id, true, true
}

// pagination reads skip and limit, defaulting to 0 and 100.
func pagination(c echo.Context) (skip, limit int, ok bool) {
	skip, limit = 0, defaultLimit
	if s := c.QueryParam("skip"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		skip = n
	}
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > maxLimit {
			return 0, 0, false
		}
		limit = n
	}
	return skip, limit, true
}

// requestContext derives the per-request database context. The caller must
// call the returned cancel function.
func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// publish emits a catalog event for a committed write. Failures are logged
// and never change the response.
func publish(c echo.Context, p queue.Publisher, resource, action string, id uint64) {
	if p == nil {
		return
	}
	admin := ""
	if a, ok := middleware.CurrentAdmin(c); ok {
		admin = a.Username
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, queue.NewCatalogChangedEvent(resource, action, id, admin)); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"resource": resource, "action": action, "id": id}).
			Warn("catalog event not published")
	}
}

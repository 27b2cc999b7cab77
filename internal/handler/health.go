package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a plain-text probe for load balancers.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// APIHealth answers GET /api/v1/health.
func APIHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Root answers GET / with a welcome message.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Welcome to the Bicycle Catalog Admin API"})
}

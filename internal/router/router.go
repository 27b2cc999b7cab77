package router // package router builds the echo instance and registers routes

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/bike-catalog-admin/internal/auth"
	"github.com/iliyamo/bike-catalog-admin/internal/config"
	"github.com/iliyamo/bike-catalog-admin/internal/handler"
	"github.com/iliyamo/bike-catalog-admin/internal/logging"
	"github.com/iliyamo/bike-catalog-admin/internal/middleware"
)

// APIPrefix is the mount point of the versioned API.
const APIPrefix = "/api/v1"

// Deps carries everything the routes need. Redis may be nil, in which case
// the catalog cache is disabled.
type Deps struct {
	Gate    *auth.Gate
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Cache   config.CacheConfig
	Redis   *redis.Client
}

// New returns an echo instance with the shared middleware stack and every
// route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logging.RequestLogger())
	e.Use(echomw.Recover())

	RegisterRoutes(e)
	admin := RegisterAuth(e, d.Auth, d.Gate)
	RegisterCatalog(admin, d.Catalog, d.Cache, d.Redis)
	return e
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
	e.GET(APIPrefix+"/health", handler.APIHealth)
}

// RegisterAuth registers the login endpoint and returns the admin group
// guarded by the auth gate, with /me already mounted on it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, gate *auth.Gate) *echo.Group {
	e.POST(APIPrefix+"/admin/login", a.Login)

	admin := e.Group(APIPrefix+"/admin", middleware.AdminAuth(gate))
	admin.GET("/me", a.Me)
	return admin
}

// RegisterCatalog mounts the catalog CRUD endpoints on the guarded admin
// group. GETs are served through the Redis cache and every write clears it.
func RegisterCatalog(admin *echo.Group, h *handler.CatalogHandler, cache config.CacheConfig, rdb *redis.Client) {
	g := admin.Group("",
		middleware.CatalogCache(cache, rdb),
		middleware.InvalidateCatalog(cache, rdb),
	)

	// ---- Product types ----
	g.POST("/product-types", h.CreateProductType)
	g.GET("/product-types", h.ListProductTypes)
	g.GET("/product-types/:id", h.GetProductType)
	g.PUT("/product-types/:id", h.UpdateProductType)
	g.DELETE("/product-types/:id", h.DeleteProductType)

	// ---- Part categories ----
	g.POST("/part-categories", h.CreatePartCategory)
	g.GET("/part-categories", h.ListPartCategories)
	g.GET("/part-categories/:id", h.GetPartCategory)
	g.PUT("/part-categories/:id", h.UpdatePartCategory)
	g.DELETE("/part-categories/:id", h.DeletePartCategory)

	// ---- Part options ----
	g.POST("/part-options", h.CreatePartOption)
	g.GET("/part-options", h.ListPartOptions)
	g.GET("/part-options/:id", h.GetPartOption)
	g.PUT("/part-options/:id", h.UpdatePartOption)
	g.DELETE("/part-options/:id", h.DeletePartOption)
}

// errorHandler renders framework errors (unknown route, wrong method, bad
// bind) in the API's {"detail": ...} shape.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := middleware.DetailInternal

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		logrus.WithError(err).Error("unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"detail": msg})
	}
	if err != nil {
		logrus.WithError(err).Warn("write error response")
	}
}

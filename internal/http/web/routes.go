package web

import (
	"github.com/labstack/echo/v4"
)

// AppPath redirects to the app store for the visitor's device.
const AppPath = "/app"

// RegisterRoutes registers the storefront routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/", h.Home)

	// htmx partials
	e.GET("/sections/catalog", h.CatalogSection)
	e.GET("/sections/catalog/more", h.MoreProducts)

	// App download redirect
	e.GET(AppPath, h.AppRedirect)
}

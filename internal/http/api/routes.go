package api

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the read-only JSON endpoints under the given Echo group.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/catalog", h.GetCatalog)
	g.GET("/app-link", h.GetAppLink)
}

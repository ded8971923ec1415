package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/http/web"
	"acbuy.com/showcase/internal/middleware"
)

type Handler struct {
	CatalogService web.CatalogLoader
	LinkService    web.LinkSource
}

func NewHandler(c web.CatalogLoader, l web.LinkSource) *Handler {
	return &Handler{
		CatalogService: c,
		LinkService:    l,
	}
}

// AppLinkResponse is returned by GET /app-link
type AppLinkResponse struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// GET /catalog
func (h *Handler) GetCatalog(c echo.Context) error {
	cat, err := h.CatalogService.Load(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "catalog unavailable",
		})
	}
	return c.JSON(http.StatusOK, cat)
}

// GET /app-link
func (h *Handler) GetAppLink(c echo.Context) error {
	ctx := c.Request().Context()
	platform := middleware.GetPlatform(ctx)

	link := appdownload.Resolve(c.Request().UserAgent(), h.LinkService.Get(ctx))
	if link == "" {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "no app link for platform " + string(platform),
		})
	}

	return c.JSON(http.StatusOK, AppLinkResponse{
		Platform: string(platform),
		URL:      link,
	})
}

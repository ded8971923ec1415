package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/catalog"
	"acbuy.com/showcase/internal/config"
	"acbuy.com/showcase/internal/logx"
	"acbuy.com/showcase/internal/middleware"
	vm "acbuy.com/showcase/internal/viewmodels"
	"acbuy.com/showcase/templates"
)

// CatalogLoader loads the assembled catalog.
type CatalogLoader interface {
	Load(ctx context.Context) (catalog.Catalog, error)
}

// LinkSource returns the app download links, or nil when unavailable.
type LinkSource interface {
	Get(ctx context.Context) *appdownload.Links
}

// LinkObserver is told about every /app redirect.
type LinkObserver interface {
	ObserveAppLink(platform string, resolved bool)
}

// Handler handles storefront requests
type Handler struct {
	catalog   CatalogLoader
	links     LinkSource
	pager     catalog.Pager
	prices    *catalog.PriceFormatter
	site      config.Site
	community config.Community
	observer  LinkObserver
}

// NewHandler creates a new storefront handler. observer may be nil.
func NewHandler(
	catalogSvc CatalogLoader,
	links LinkSource,
	pager catalog.Pager,
	prices *catalog.PriceFormatter,
	site config.Site,
	community config.Community,
	observer LinkObserver,
) *Handler {
	return &Handler{
		catalog:   catalogSvc,
		links:     links,
		pager:     pager,
		prices:    prices,
		site:      site,
		community: community,
		observer:  observer,
	}
}

// Home renders the page shell. The catalog section loads itself.
func (h *Handler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	page := vm.Page{
		Title:     h.site.Title,
		Version:   middleware.GetVersion(ctx),
		Skeletons: h.pager.Initial,
		Community: vm.Community{
			Title:  h.community.Title,
			Text:   h.community.Text,
			Button: h.community.Button,
			URL:    h.community.URL,
		},
	}
	return templates.Home(page).Render(ctx, c.Response())
}

// CatalogSection renders the featured panel and the first grid chunk.
// Store failures render the empty state.
func (h *Handler) CatalogSection(c echo.Context) error {
	ctx := c.Request().Context()

	cat, err := h.catalog.Load(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("catalog unavailable, rendering empty state")
		cat = catalog.Assemble(nil, nil)
	}

	view := vm.Catalog{
		Featured: h.featured(cat),
		Grid:     FromPage(h.pager.First(cat.Remaining), h.prices),
	}
	return templates.Catalog(view).Render(ctx, c.Response())
}

// featured points the app button at AppRedirect, which resolves the store
// link per request. Store links may use schemes (itms-apps, appmarket)
// that html/template would not emit in an href.
func (h *Handler) featured(cat catalog.Catalog) vm.Featured {
	f := vm.Featured{
		Title:    h.site.Title,
		Headline: h.site.Headline,
		Badge:    h.site.Badge,
		Button:   h.site.Button,
		AppLink:  AppPath,
	}
	if p, ok := cat.Featured(); ok {
		card := FromDomainProduct(p, h.prices)
		f.Product = &card
	}
	return f
}

// MoreProducts waits the reveal delay and returns the next chunk of the
// grid. The visible query parameter is what the client currently shows.
func (h *Handler) MoreProducts(c echo.Context) error {
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	ctx := c.Request().Context()

	visible, err := strconv.Atoi(c.QueryParam("visible"))
	if err != nil {
		visible = h.pager.Initial
	}

	cat, err := h.catalog.Load(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("catalog unavailable, ending grid")
		cat = catalog.Assemble(nil, nil)
	}

	page, err := h.pager.More(ctx, cat.Remaining, visible)
	if err != nil {
		// client went away during the reveal delay
		return err
	}
	return templates.MoreProducts(FromPage(page, h.prices)).Render(ctx, c.Response())
}

// AppRedirect sends the visitor to the store for their device, or back to
// the storefront when no link applies.
func (h *Handler) AppRedirect(c echo.Context) error {
	ctx := c.Request().Context()
	platform := middleware.GetPlatform(ctx)

	link := appdownload.Resolve(c.Request().UserAgent(), h.links.Get(ctx))
	if h.observer != nil {
		h.observer.ObserveAppLink(string(platform), link != "")
	}
	if link == "" {
		logx.Debug().Str("platform", string(platform)).Msg("no app link for platform")
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Redirect(http.StatusFound, link)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

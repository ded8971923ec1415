package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/catalog"
	"acbuy.com/showcase/internal/http/api"
	"acbuy.com/showcase/internal/middleware"
	"acbuy.com/showcase/internal/product"
	"acbuy.com/showcase/internal/testutil"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	seed := testutil.Seed{
		Campaign: []product.Product{
			{ID: "b", Name: "Product b", CurrentPrice: product.NewPrice(20), CreatedAt: base},
		},
		Links: &appdownload.Links{
			IOSAppStore:       "https://apps.apple.com/app/acbuy",
			AndroidGooglePlay: "https://play.google.com/store/apps/details?id=com.acbuy",
		},
	}
	for i, id := range []string{"a", "b", "c"} {
		seed.Products = append(seed.Products, product.Product{
			ID:           id,
			Name:         "Product " + id,
			CurrentPrice: product.NewPrice(float64(10 * (i + 1))),
			CreatedAt:    base,
		})
	}
	db := testutil.NewSeededDB(t, seed)

	catalogSvc := catalog.NewService(product.NewService(product.New(db)))
	linkSvc := appdownload.NewService(appdownload.New(db))
	handler := api.NewHandler(catalogSvc, linkSvc)

	e := echo.New()
	e.Use(middleware.Platform())
	api.RegisterRoutes(e.Group("/api/v1"), handler)
	return e
}

func TestGetCatalog(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Promoted  []product.Product `json:"promoted"`
		Remaining []product.Product `json:"remaining"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if len(resp.Promoted) != 1 || resp.Promoted[0].ID != "b" {
		t.Errorf("unexpected promoted %+v", resp.Promoted)
	}
	if len(resp.Remaining) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(resp.Remaining))
	}
	for _, p := range resp.Remaining {
		if p.ID == "b" {
			t.Error("promoted product leaked into remaining")
		}
	}
}

func TestGetAppLink(t *testing.T) {
	e := newTestServer(t)

	tests := []struct {
		name         string
		ua           string
		wantStatus   int
		wantPlatform string
		wantURL      string
	}{
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X)", http.StatusOK, "ios", "https://apps.apple.com/app/acbuy"},
		{"oppo falls back to google play", "Mozilla/5.0 (Linux; Android 12; OPPO A96)", http.StatusOK, "oppo", "https://play.google.com/store/apps/details?id=com.acbuy"},
		{"desktop", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", http.StatusNotFound, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/app-link", nil)
			req.Header.Set("User-Agent", tc.ua)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if tc.wantStatus != http.StatusOK {
				return
			}

			var resp api.AppLinkResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to parse response: %v", err)
			}
			if resp.Platform != tc.wantPlatform || resp.URL != tc.wantURL {
				t.Errorf("got %+v", resp)
			}
		})
	}
}

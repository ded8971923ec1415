package middleware_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/logx"
	"acbuy.com/showcase/internal/middleware"
	"acbuy.com/showcase/internal/version"
)

// Helper to create echo context with request/response
func newContext(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// Dummy handler that returns 200 OK
func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func TestPlatform(t *testing.T) {
	t.Run("detects platform from user agent", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/")
		c.Request().Header.Set("User-Agent", "Mozilla/5.0 (Linux; Android 13; Redmi Note 12)")

		var got appdownload.Platform
		handler := middleware.Platform()(func(c echo.Context) error {
			got = middleware.GetPlatform(c.Request().Context())
			return nil
		})
		if err := handler(c); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != appdownload.PlatformXiaomi {
			t.Errorf("expected xiaomi, got %q", got)
		}
	})

	t.Run("defaults to unknown outside middleware", func(t *testing.T) {
		if got := middleware.GetPlatform(context.Background()); got != appdownload.PlatformUnknown {
			t.Errorf("expected unknown, got %q", got)
		}
	})
}

func TestVersion(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")

	var got string
	handler := middleware.Version()(func(c echo.Context) error {
		got = middleware.GetVersion(c.Request().Context())
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != version.Version {
		t.Errorf("expected %q, got %q", version.Version, got)
	}
}

func TestSecureHeaders(t *testing.T) {
	e := echo.New()
	e.Use(middleware.SecureHeaders(true))
	e.GET("/", okHandler)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("expected X-Frame-Options DENY, got %q", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
	if got := rec.Header().Get("Content-Security-Policy"); !strings.Contains(got, "unpkg.com") {
		t.Errorf("unexpected CSP %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	t.Run("rejects requests over the limit", func(t *testing.T) {
		e := echo.New()
		e.Use(middleware.RateLimit(2))
		e.GET("/", okHandler)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.7:5555"
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}

		if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
			t.Errorf("unexpected status sequence %v", codes)
		}
	})

	t.Run("zero disables the limiter", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/")
		if err := middleware.RateLimit(0)(okHandler)(c); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logx.Init(logx.Options{Level: "info", Out: &buf})
	t.Cleanup(func() { logx.Init(logx.Options{Level: "info"}) })

	e := echo.New()
	e.Use(middleware.Platform())
	e.Use(middleware.RequestLogger())
	e.GET("/sections/catalog", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/sections/catalog", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X)")
	e.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"uri":"/sections/catalog"`, `"status":200`, `"platform":"ios"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in log line %s", want, out)
		}
	}
}

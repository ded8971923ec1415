package middleware

import (
	"time"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
	"github.com/unrolled/secure"
)

// contentSecurityPolicy allows the htmx script from unpkg and product
// images from any https host.
const contentSecurityPolicy = "default-src 'self'; script-src 'self' https://unpkg.com; img-src 'self' https: data:; style-src 'self' 'unsafe-inline'"

// SecureHeaders sets the standard browser hardening headers.
func SecureHeaders(isDevelopment bool) echo.MiddlewareFunc {
	s := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: contentSecurityPolicy,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         isDevelopment,
	})
	return echo.WrapMiddleware(s.Handler)
}

// RateLimit caps requests per client IP per minute. A non-positive limit
// disables it.
func RateLimit(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echo.WrapMiddleware(httprate.Limit(perMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
}

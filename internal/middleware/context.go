package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/version"
)

// Context keys
type platformKey struct{}
type versionKey struct{}

// Platform classifies the request's User-Agent once and stores the result
// in the request context.
func Platform() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := appdownload.DetectPlatform(c.Request().UserAgent())
			ctx := context.WithValue(c.Request().Context(), platformKey{}, p)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetPlatform retrieves the platform from context. Returns PlatformUnknown if not set.
func GetPlatform(ctx context.Context) appdownload.Platform {
	if p, ok := ctx.Value(platformKey{}).(appdownload.Platform); ok {
		return p
	}
	return appdownload.PlatformUnknown
}

// Version adds the app version to the request context.
func Version() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := context.WithValue(c.Request().Context(), versionKey{}, version.Version)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetVersion retrieves the version from context.
func GetVersion(ctx context.Context) string {
	if v, ok := ctx.Value(versionKey{}).(string); ok {
		return v
	}
	return version.Version
}

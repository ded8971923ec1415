package middleware

import (
	"github.com/labstack/echo/v4"
	mwecho "github.com/labstack/echo/v4/middleware"

	"acbuy.com/showcase/internal/logx"
)

// RequestLogger writes one zerolog line per request.
func RequestLogger() echo.MiddlewareFunc {
	return mwecho.RequestLoggerWithConfig(mwecho.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v mwecho.RequestLoggerValues) error {
			ev := logx.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = logx.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Str("platform", string(GetPlatform(c.Request().Context()))).
				Msg("request")
			return nil
		},
	})
}

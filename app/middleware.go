package app

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"findaccommodation/httpx"
	middlewarex "findaccommodation/middleware"
)

func skipStatic(c *echo.Context) bool {
	return strings.HasPrefix(c.Path(), "/static") || c.Path() == "/favicon.ico"
}

func RegisterMiddleware(e *echo.Echo, store sessions.Store, secure bool) {
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogMethod:  true,
		LogURI:     true,
		LogLatency: true,
		Skipper:    skipStatic,
		LogValuesFunc: func(c *echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				slog.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Bool("htmx", c.Request().Header.Get("HX-Request") == "true"),
					slog.Duration("latency", v.Latency.Truncate(time.Microsecond)),
				)
			} else {
				slog.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.String("error", v.Error.Error()),
				)
			}
			return nil
		},
	}))
	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store:   middleware.NewRateLimiterMemoryStore(20.0),
		Skipper: skipStatic,
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		ContextKey:     httpx.TemplContextCSRFKey,
		CookieSecure:   secure,
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	e.Use(session.Middleware(store))
	e.Use(middlewarex.WithCSRFContext)
}

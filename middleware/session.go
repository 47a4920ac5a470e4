package middleware

import (
	"context"
	"net/url"

	"github.com/labstack/echo/v5"

	"findaccommodation/httpx"
)

func withUser(c *echo.Context, userSession *httpx.UserSessionData) {
	ctx := context.WithValue(c.Request().Context(), httpx.TemplContextSessionKey, userSession)
	c.SetRequest(c.Request().WithContext(ctx))
}

// WithAuthRequired sends anonymous visitors to the log-in page, remembering
// where they came from.
func WithAuthRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		userSession := httpx.GetUserSessionData(c)
		if userSession == nil {
			target := c.Request().URL.Path
			if ref := c.Request().Header.Get("HX-Current-URL"); ref != "" {
				if u, err := url.Parse(ref); err == nil {
					target = u.RequestURI()
				}
			}
			return httpx.Redirect(c, "/log-in?next="+url.QueryEscape(target))
		}

		withUser(c, userSession)
		return next(c)
	}
}

func WithAuthForbidden(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		userSession := httpx.GetUserSessionData(c)
		if userSession != nil {
			return httpx.Redirect(c, "/")
		}

		withUser(c, nil)
		return next(c)
	}
}

func WithAuthAny(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		withUser(c, httpx.GetUserSessionData(c))
		return next(c)
	}
}

// WithCSRFContext exposes the token set by echo's CSRF middleware to templates.
func WithCSRFContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		if token, ok := c.Get(httpx.TemplContextCSRFKey).(string); ok {
			ctx := context.WithValue(c.Request().Context(), httpx.TemplContextCSRFKey, token)
			c.SetRequest(c.Request().WithContext(ctx))
		}
		return next(c)
	}
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	"findaccommodation/httpx"
	"findaccommodation/templates"
)

// HandleError renders errors that escaped a handler as an HTML error page.
func (h *Handlers) HandleError(c *echo.Context, err error) {
	code := httpx.StatusFor(err)

	var he *echo.HTTPError
	var coder interface{ StatusCode() int }
	switch {
	case errors.As(err, &he):
		code = he.Code
	case errors.As(err, &coder):
		code = coder.StatusCode()
	}

	message := http.StatusText(code)
	switch {
	case code == http.StatusNotFound:
		message = "We could not find that page"
	case code >= http.StatusInternalServerError:
		slog.Error("unhandled error", "uri", c.Request().RequestURI, "error", err)
		if code == http.StatusBadGateway {
			message = httpx.MsgErrUnavailable
		} else {
			message = httpx.MsgErrGeneric
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	if rerr := httpx.Render(c, code, templates.Page("error", message, templates.ErrorProps{Code: code, Message: message})); rerr != nil {
		slog.Error("render error page", "error", rerr)
	}
}

package httpx

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"
)

func BindAndValidate(c *echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return err
	}

	if err := c.Validate(v); err != nil {
		return err
	}

	return nil
}

// QueryPage reads the "page" query parameter. Missing or malformed values fall
// back to page 1.
func QueryPage(c *echo.Context) int {
	page, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("page")))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// IsHtmx reports whether the request was issued by htmx.
func IsHtmx(c *echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// IsBoosted reports whether htmx issued the request for a whole page swap.
func IsBoosted(c *echo.Context) bool {
	return c.Request().Header.Get("HX-Boosted") == "true"
}

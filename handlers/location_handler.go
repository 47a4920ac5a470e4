package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"findaccommodation/httpx"
	"findaccommodation/templates"
)

// Cities returns the city options of the selected state. An empty state resets
// the city select.
func (h *Handlers) Cities(c *echo.Context) error {
	props := templates.CityOptionsProps{}

	if stateID := c.QueryParam("state"); stateID != "" {
		states, err := h.Listings.States(c.Request().Context())
		if err != nil {
			return err
		}
		props.Cities = citiesOf(states, stateID)
	}

	return httpx.Render(c, http.StatusOK, templates.Fragment("search", "city-options", props))
}

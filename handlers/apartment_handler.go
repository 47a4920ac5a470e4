package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"findaccommodation/api"
	"findaccommodation/httpx"
	"findaccommodation/listing"
	"findaccommodation/templates"
)

// Apartment serves the detail page shell. The details themselves are loaded by
// htmx from ApartmentDetails so the skeleton shows while the API answers.
func (h *Handlers) Apartment(c *echo.Context) error {
	props := templates.ApartmentProps{
		ID:     c.Param("id"),
		Result: listing.NewLoading(),
	}

	return httpx.Render(c, http.StatusOK, templates.Page("apartment", "Property", props))
}

func (h *Handlers) ApartmentDetails(c *echo.Context) error {
	props, status := h.loadApartment(c, c.Param("id"))

	if !httpx.IsHtmx(c) {
		title := "Property"
		if props.Result.IsLoaded() {
			title = templates.Capitalize(props.Result.Apartment.Title)
		}
		return httpx.Render(c, status, templates.Page("apartment", title, props))
	}
	return httpx.Render(c, status, templates.Fragment("apartment", "details", props))
}

func (h *Handlers) loadApartment(c *echo.Context, id string) (templates.ApartmentProps, int) {
	props := templates.ApartmentProps{
		ID:         id,
		CanMessage: httpx.UserFromContext(c.Request().Context()) != nil,
	}

	apartment, err := h.Listings.GetApartment(c.Request().Context(), id)
	if err != nil {
		props.Result = listing.NewAbsent()
		if errors.Is(err, api.ErrNotFound) {
			props.Error = httpx.MsgErrApartmentNotFound
		} else {
			props.Error = errorMessage(err)
		}
		return props, httpx.StatusFor(err)
	}

	props.Result = listing.NewLoaded(apartment)
	props.Amenities = listing.Amenities(apartment.Amenities)
	props.Share = listing.ShareLinks(h.BaseURL+"/apartments/"+id, templates.Capitalize(apartment.Title))

	return props, http.StatusOK
}

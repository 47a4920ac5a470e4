package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v5"

	"findaccommodation/api"
	"findaccommodation/httpx"
	"findaccommodation/pagination"
	"findaccommodation/search"
	"findaccommodation/templates"
)

func (h *Handlers) Home(c *echo.Context) error {
	ctx := c.Request().Context()

	props := templates.HomeProps{
		SearchBar: h.searchBar(ctx, search.DefaultOption, search.State{}),
	}

	featured, err := h.Listings.FeaturedApartments(ctx, 1, h.FeaturedSize)
	if err != nil {
		props.Error = errorMessage(err)
	} else {
		props.Featured = templates.NewCards(featured.Apartments)
		props.SeeMore = featured.NextPage != nil
	}

	return httpx.Render(c, http.StatusOK, templates.Page("home", "", props))
}

func (h *Handlers) Featured(c *echo.Context) error {
	fetcher := pagination.FetcherFunc(h.fetchFeatured)

	results := templates.ResultsProps{
		Heading:  "Featured properties",
		BasePath: "/featured",
		View:     h.paginate(c, fetcher, search.State{}),
	}

	return h.renderResults(c, "featured", "Featured properties", results, func(results templates.ResultsProps) any {
		return results
	})
}

func (h *Handlers) fetchFeatured(ctx context.Context, _ search.State, page, size int) (*api.ApartmentPage, error) {
	return h.Listings.FeaturedApartments(ctx, page, size)
}

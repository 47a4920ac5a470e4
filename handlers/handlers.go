// Package handlers serves the pages and htmx fragments of the site.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	"findaccommodation/api"
	"findaccommodation/data"
	"findaccommodation/httpx"
	"findaccommodation/pagination"
	"findaccommodation/search"
	"findaccommodation/templates"
)

// JobQueue persists background jobs.
type JobQueue interface {
	CreateJob(ctx context.Context, jobType data.JobType, payload json.RawMessage) (*data.Job, error)
}

type Handlers struct {
	Listings     api.Listings
	Accounts     api.Accounts
	Jobs         JobQueue
	PageSize     int
	FeaturedSize int
	BaseURL      string
	// TokenKey seals the API access token stored in sessions.
	TokenKey []byte
}

// paginate loads the requested page through a pagination.Controller. The
// "step" query parameter moves one page from "page" in the given direction.
func (h *Handlers) paginate(c *echo.Context, fetcher pagination.Fetcher, filter search.State) pagination.View {
	ctx := c.Request().Context()

	ctl, err := pagination.NewController(fetcher, filter, h.PageSize)
	if err != nil {
		return pagination.View{Err: err}
	}

	ctl.JumpTo(httpx.QueryPage(c))
	view := ctl.Load(ctx)
	if view.Err != nil {
		return view
	}

	switch c.QueryParam("step") {
	case "next":
		if ctl.Advance() {
			view = ctl.Load(ctx)
		}
	case "prev":
		if ctl.Retreat() {
			view = ctl.Load(ctx)
		}
	}

	return view
}

// renderResults answers htmx page changes with the results fragment and
// anything else with the full page.
func (h *Handlers) renderResults(c *echo.Context, page, title string, results templates.ResultsProps, full func(templates.ResultsProps) any) error {
	status := http.StatusOK
	switch {
	case results.View.Err != nil:
		status = httpx.StatusFor(results.View.Err)
		results.Error = errorMessage(results.View.Err)
	case results.Error != "":
		status = http.StatusBadRequest
	}

	if httpx.IsHtmx(c) && !httpx.IsBoosted(c) {
		if results.View.CurrentPage > 0 {
			httpx.PushURL(c, results.PageURL(results.View.CurrentPage))
		}
		httpx.Retarget(c, "#results")
		if results.View.ScrollToTop {
			httpx.Reswap(c, "outerHTML show:window:top")
		}
		return httpx.Render(c, status, templates.Fragment(page, "results", results))
	}

	return httpx.Render(c, status, templates.Page(page, title, full(results)))
}

func errorMessage(err error) string {
	return httpx.FormatErrors(err)[httpx.ErrorKey]
}

// searchBar fills the location options of the search bar. Taxonomy failures
// only degrade the bar, so they are logged and swallowed.
func (h *Handlers) searchBar(ctx context.Context, option string, state search.State) templates.SearchBarProps {
	bar := templates.NewSearchBarProps(option, state)

	states, err := h.Listings.States(ctx)
	if err != nil {
		slog.Warn("search bar: load states", "error", err)
	}
	bar.States = states
	bar.Cities = citiesOf(states, state.State)

	countries, err := h.Listings.Countries(ctx)
	if err != nil {
		slog.Warn("search bar: load countries", "error", err)
	}
	bar.Countries = countries

	return bar
}

func citiesOf(states []api.State, stateID string) []api.City {
	if stateID == "" {
		return nil
	}
	for _, s := range states {
		if s.ID == stateID {
			return s.Cities
		}
	}
	return nil
}

package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v5"

	"findaccommodation/httpx"
	"findaccommodation/pagination"
	"findaccommodation/search"
	"findaccommodation/templates"
)

// SearchSubmit turns a search bar submission into a search page URL. A new
// search always starts at page 1.
func (h *Handlers) SearchSubmit(c *echo.Context) error {
	values := c.QueryParams()

	option := values.Get("option")
	if option == "" {
		option = search.RouteFor(values.Get("available_for"))
	}
	if _, ok := search.OptionByRoute(option); !ok {
		option = search.DefaultOption
	}

	query := url.Values{}
	for key, vals := range values {
		switch key {
		case "option", "page", "step", "available_for":
			continue
		}
		for _, v := range vals {
			if v != "" {
				query.Add(key, v)
			}
		}
	}

	target := "/search/" + option
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return c.Redirect(http.StatusSeeOther, target)
}

func (h *Handlers) Search(c *echo.Context) error {
	option, ok := search.OptionByRoute(c.Param("option"))
	if !ok {
		return echo.ErrNotFound
	}

	heading := "Properties to " + option.Label
	if option.AvailableFor == "sale" {
		heading = "Properties for sale"
	}

	results := templates.ResultsProps{
		Heading:     heading,
		BasePath:    "/search/" + option.Route,
		ShowSort:    true,
		SortOptions: search.SortOptions,
	}

	state, err := searchState(c.QueryParams(), option)
	if err != nil {
		slog.Debug("search: invalid filters", "error", err)
		results.Error = httpx.MsgErrInvalidSearch
	} else {
		results.View = h.paginate(c, pagination.FetcherFunc(h.Listings.SearchApartments), state)
	}
	results.Filter = state

	return h.renderResults(c, "search", heading, results, func(results templates.ResultsProps) any {
		return templates.SearchProps{
			SearchBar: h.searchBar(c.Request().Context(), option.Route, state),
			Results:   results,
		}
	})
}

// searchState reads the filters of a search page. The route decides what the
// listing is available for; a sort label is accepted in place of a sort type.
func searchState(values url.Values, option search.Option) (search.State, error) {
	state, err := search.Parse(values)
	if err != nil {
		return search.State{AvailableFor: option.AvailableFor}, err
	}

	state.AvailableFor = option.AvailableFor
	if state.SortType != "" {
		state = state.WithSort(search.SortValue(state.SortType))
	}

	return state, state.Validate()
}

package templates

import (
	"net/url"
	"strconv"

	"findaccommodation/api"
	"findaccommodation/listing"
	"findaccommodation/pagination"
	"findaccommodation/search"
)

// FormProps carries submitted values and their errors back into a form.
type FormProps struct {
	Values  map[string]string
	Errors  map[string]string
	Success string
}

func (p FormProps) Value(field string) string { return p.Values[field] }
func (p FormProps) Error(field string) string { return p.Errors[field] }

type SearchBarProps struct {
	Options      []search.Option
	Option       string
	State        search.State
	States       []api.State
	Cities       []api.City
	Countries    []api.Country
	Prices       []int64
	ListingTypes []string
	Amenities    []string
	Error        string
}

func NewSearchBarProps(option string, state search.State) SearchBarProps {
	return SearchBarProps{
		Options:      search.Options,
		Option:       option,
		State:        state,
		Prices:       search.PriceRange(search.PriceMin, search.PriceMax, search.PriceStep),
		ListingTypes: search.ListingTypes,
		Amenities:    search.Amenities,
	}
}

type CityOptionsProps struct {
	Cities   []api.City
	Selected string
}

// ResultsProps drives a paginated list of apartments and its controls.
type ResultsProps struct {
	Heading     string
	BasePath    string
	Filter      search.State
	View        pagination.View
	ShowSort    bool
	SortOptions []search.SortOption
	Error       string
}

func (p ResultsProps) query() url.Values {
	return p.Filter.Encode()
}

// PageURL links to page n of the current filter.
func (p ResultsProps) PageURL(n int) string {
	q := p.query()
	q.Set("page", strconv.Itoa(n))
	return p.BasePath + "?" + q.Encode()
}

// StepURL links to the page after or before the current one.
func (p ResultsProps) StepURL(step string) string {
	q := p.query()
	q.Set("page", strconv.Itoa(p.View.CurrentPage))
	q.Set("step", step)
	return p.BasePath + "?" + q.Encode()
}

// Hidden lists the filter fields the sort form resubmits, without sort_type.
func (p ResultsProps) Hidden() url.Values {
	q := p.query()
	q.Del("sort_type")
	return q
}

func (p ResultsProps) Count() int {
	if p.View.Page == nil {
		return 0
	}
	return p.View.Page.TotalNumberOfItems
}

type CardProps struct {
	Apartment api.Apartment
	Amenities []listing.AmenityView
}

func NewCards(apartments []api.Apartment) []CardProps {
	cards := make([]CardProps, 0, len(apartments))
	for _, a := range apartments {
		cards = append(cards, CardProps{Apartment: a, Amenities: listing.Amenities(a.Amenities)})
	}
	return cards
}

func (p ResultsProps) Cards() []CardProps {
	if p.View.Page == nil {
		return nil
	}
	return NewCards(p.View.Page.Apartments)
}

type HomeProps struct {
	SearchBar SearchBarProps
	Featured  []CardProps
	SeeMore   bool
	Error     string
}

type SearchProps struct {
	SearchBar SearchBarProps
	Results   ResultsProps
}

type ApartmentProps struct {
	ID         string
	Result     listing.Result
	Amenities  []listing.AmenityView
	Share      []listing.ShareLink
	Message    FormProps
	CanMessage bool
	Error      string
}

type ErrorProps struct {
	Code    int
	Message string
}

// Package search holds the filter state of the listing search form.
//
// A State is a plain value: handlers parse it from the query string and pass it
// explicitly to whatever needs it (API client, pagination controller, views).
package search

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type State struct {
	AvailableFor string   `validate:"omitempty,oneof=sale rent share lease short_let"`
	Country      string   `validate:"max=64"`
	State        string   `validate:"max=64"`
	City         string   `validate:"max=64"`
	School       string   `validate:"max=64"`
	ListingType  string   `validate:"max=64"`
	MinPrice     int64    `validate:"min=0"`
	MaxPrice     int64    `validate:"omitempty,gtefield=MinPrice"`
	MinFloor     int      `validate:"min=0"`
	MaxFloor     int      `validate:"omitempty,gtefield=MinFloor"`
	Amenities    []string `validate:"max=16,dive,max=64"`
	SortType     string   `validate:"omitempty,oneof=price -price created_at -created_at bedroom -bedroom"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse reads a State from query values. Both "amenities" and the indexed
// "amenities[0]" form produced by browser forms are accepted. Malformed numbers
// are reported as errors; unknown keys are ignored.
func Parse(values url.Values) (State, error) {
	s := State{
		AvailableFor: strings.TrimSpace(values.Get("available_for")),
		Country:      strings.TrimSpace(values.Get("country")),
		State:        strings.TrimSpace(values.Get("state")),
		City:         strings.TrimSpace(values.Get("city")),
		School:       strings.TrimSpace(values.Get("school")),
		ListingType:  strings.TrimSpace(values.Get("listing_type")),
		SortType:     strings.TrimSpace(values.Get("sort_type")),
	}

	var err error
	if s.MinPrice, err = parseInt64(values, "min_price"); err != nil {
		return State{}, err
	}
	if s.MaxPrice, err = parseInt64(values, "max_price"); err != nil {
		return State{}, err
	}

	minFloor, err := parseInt64(values, "min_floor_num")
	if err != nil {
		return State{}, err
	}
	maxFloor, err := parseInt64(values, "max_floor_num")
	if err != nil {
		return State{}, err
	}
	s.MinFloor, s.MaxFloor = int(minFloor), int(maxFloor)

	s.Amenities = parseAmenities(values)

	return s, nil
}

// Validate checks the State against its field rules.
func (s State) Validate() error {
	return validate.Struct(s)
}

// Encode renders the State as query values, omitting empty fields.
// The output is stable so it can be used as a cache key.
func (s State) Encode() url.Values {
	values := url.Values{}

	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}

	set("available_for", s.AvailableFor)
	set("country", s.Country)
	set("state", s.State)
	set("city", s.City)
	set("school", s.School)
	set("listing_type", s.ListingType)
	set("sort_type", s.SortType)

	if s.MinPrice > 0 {
		values.Set("min_price", strconv.FormatInt(s.MinPrice, 10))
	}
	if s.MaxPrice > 0 {
		values.Set("max_price", strconv.FormatInt(s.MaxPrice, 10))
	}
	if s.MinFloor > 0 {
		values.Set("min_floor_num", strconv.Itoa(s.MinFloor))
	}
	if s.MaxFloor > 0 {
		values.Set("max_floor_num", strconv.Itoa(s.MaxFloor))
	}

	for i, amenity := range s.Amenities {
		values.Set(fmt.Sprintf("amenities[%d]", i), amenity)
	}

	return values
}

// WithSort returns a copy of s sorted by sortType.
func (s State) WithSort(sortType string) State {
	s.SortType = sortType
	return s
}

// IsZero reports whether no filter is set.
func (s State) IsZero() bool {
	return len(s.Encode()) == 0
}

func parseInt64(values url.Values, key string) (int64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value for %q must be an integer", key)
	}

	return n, nil
}

func parseAmenities(values url.Values) []string {
	indexed := make(map[int]string)
	var plain []string

	for key, vals := range values {
		switch {
		case key == "amenities":
			plain = append(plain, vals...)
		case strings.HasPrefix(key, "amenities[") && strings.HasSuffix(key, "]"):
			idx, err := strconv.Atoi(key[len("amenities[") : len(key)-1])
			if err != nil || len(vals) == 0 {
				continue
			}
			indexed[idx] = vals[0]
		}
	}

	idxs := make([]int, 0, len(indexed))
	for i := range indexed {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)

	var out []string
	seen := make(map[string]bool)
	add := func(a string) {
		a = strings.TrimSpace(a)
		if a == "" || seen[a] {
			return
		}
		seen[a] = true
		out = append(out, a)
	}

	for _, i := range idxs {
		add(indexed[i])
	}
	for _, a := range plain {
		add(a)
	}

	return out
}

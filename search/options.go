package search

// Option is a search route segment, e.g. /search/buy, and the
// available_for value the API filters on.
type Option struct {
	Route        string
	AvailableFor string
	Label        string
}

var Options = []Option{
	{Route: "rent", AvailableFor: "rent", Label: "Rent"},
	{Route: "buy", AvailableFor: "sale", Label: "Buy"},
	{Route: "share", AvailableFor: "share", Label: "Share"},
	{Route: "lease", AvailableFor: "lease", Label: "Lease"},
	{Route: "short-let", AvailableFor: "short_let", Label: "Short let"},
}

// DefaultOption is preselected on the home page search bar.
const DefaultOption = "rent"

// OptionByRoute looks up an Option by its route segment.
func OptionByRoute(route string) (Option, bool) {
	for _, o := range Options {
		if o.Route == route {
			return o, true
		}
	}
	return Option{}, false
}

// RouteFor maps an available_for value to its route segment.
// An unknown or empty value maps to the empty string.
func RouteFor(availableFor string) string {
	for _, o := range Options {
		if o.AvailableFor == availableFor {
			return o.Route
		}
	}
	return ""
}

type SortOption struct {
	Label string
	Value string
}

var SortOptions = []SortOption{
	{Label: "Most recent", Value: "-created_at"},
	{Label: "Least recent", Value: "created_at"},
	{Label: "Lowest price", Value: "price"},
	{Label: "Highest price", Value: "-price"},
	{Label: "Least number of bedrooms", Value: "bedroom"},
	{Label: "Most number of bedrooms", Value: "-bedroom"},
}

// SortValue maps a sort label, as sent by the sort select, to the API's sort_type.
// Values that are already API sort types pass through.
func SortValue(labelOrValue string) string {
	for _, o := range SortOptions {
		if o.Label == labelOrValue || o.Value == labelOrValue {
			return o.Value
		}
	}
	return ""
}

var ListingTypes = []string{
	"none self-contained",
	"self-contained",
	"flat",
	"office space",
	"bungalow",
	"duplex",
	"mansion",
}

const (
	PriceMin  = 0
	PriceMax  = 10_000_000
	PriceStep = 200_000
)

// PriceRange returns min, min+step, ... up to and including max.
// A non-positive step or max < min yields nil.
func PriceRange(min, max, step int64) []int64 {
	if step <= 0 || max < min {
		return nil
	}

	prices := make([]int64, 0, (max-min)/step+1)
	for p := min; ; p += step {
		prices = append(prices, p)
		if p > max-step {
			break
		}
	}
	return prices
}

// Amenities offered as search filters.
var Amenities = []string{
	"bedroom",
	"bathroom",
	"kitchen",
	"toilet",
	"garage",
	"swimming pool",
	"balcony",
	"furnished",
	"pets allowed",
}

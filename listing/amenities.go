package listing

import "findaccommodation/api"

var amenityIcons = map[string]string{
	"bedroom":          "bedroom",
	"bathroom":         "bathtub",
	"garage":           "garage",
	"kitchen":          "kitchen",
	"swimming pool":    "swimming-pool",
	"toilet":           "toilet",
	"new building":     "building",
	"old building":     "building",
	"furnished":        "building",
	"balcony":          "balcony",
	"veranda":          "balcony",
	"pets allowed":     "pets",
	"pets not allowed": "no-pets",
}

// AmenityView is an amenity ready for display.
type AmenityView struct {
	Name     string
	Quantity int
	Icon     string
}

// IconPath returns the static path of the icon for an amenity name, or "" when
// there is none.
func IconPath(name string) string {
	icon, ok := amenityIcons[name]
	if !ok {
		return ""
	}
	return "/static/icons/" + icon + ".svg"
}

// Amenities returns the amenities worth showing: only those with a positive quantity.
func Amenities(in []api.ApartmentAmenity) []AmenityView {
	out := make([]AmenityView, 0, len(in))
	for _, a := range in {
		if a.Quantity <= 0 {
			continue
		}
		out = append(out, AmenityView{
			Name:     a.Amenity.Name,
			Quantity: a.Quantity,
			Icon:     IconPath(a.Amenity.Name),
		})
	}
	return out
}

package listing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"findaccommodation/api"
)

func TestResult(t *testing.T) {
	assert.True(t, NewLoading().IsLoading())
	assert.True(t, NewAbsent().IsAbsent())

	loaded := NewLoaded(&api.Apartment{ID: "ap-1"})
	assert.True(t, loaded.IsLoaded())
	assert.Equal(t, "ap-1", loaded.Apartment.ID)

	assert.True(t, NewLoaded(nil).IsAbsent(), "a nil apartment is never loaded")
	assert.Equal(t, "loaded", Loaded.String())
}

func TestAmenities(t *testing.T) {
	in := []api.ApartmentAmenity{
		{ID: "1", Quantity: 3, Amenity: api.Amenity{Name: "bedroom"}},
		{ID: "2", Quantity: 0, Amenity: api.Amenity{Name: "garage"}},
		{ID: "3", Quantity: 1, Amenity: api.Amenity{Name: "pets not allowed"}},
		{ID: "4", Quantity: 2, Amenity: api.Amenity{Name: "sauna"}},
		{ID: "5", Quantity: -1, Amenity: api.Amenity{Name: "toilet"}},
	}

	assert.Equal(t, []AmenityView{
		{Name: "bedroom", Quantity: 3, Icon: "/static/icons/bedroom.svg"},
		{Name: "pets not allowed", Quantity: 1, Icon: "/static/icons/no-pets.svg"},
		{Name: "sauna", Quantity: 2, Icon: ""},
	}, Amenities(in))
}

func TestShareLinks(t *testing.T) {
	links := ShareLinks("https://example.com/apartments/ap-1", "Flat & garden")

	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, l.Name)
		assert.NotContains(t, l.URL, "Flat & garden")
	}
	assert.Equal(t, []string{"Facebook", "X", "WhatsApp", "Telegram", "LinkedIn", "Reddit", "VK", "Line", "Tumblr", "Viber", "Email"}, names)
	assert.True(t, strings.HasPrefix(links[0].URL, "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fexample.com"))

	byName := make(map[string]string, len(links))
	for _, l := range links {
		byName[l.Name] = l.URL
	}
	assert.Equal(t, "https://www.reddit.com/submit?url=https%3A%2F%2Fexample.com%2Fapartments%2Fap-1&title=Flat+%26+garden", byName["Reddit"])
	assert.Equal(t, "https://social-plugins.line.me/lineit/share?url=https%3A%2F%2Fexample.com%2Fapartments%2Fap-1", byName["Line"])
	assert.Equal(t, "viber://forward?text=Flat%20%26%20garden%20https%3A%2F%2Fexample.com%2Fapartments%2Fap-1", byName["Viber"])
}

package api

import "time"

// ApartmentPage is one page of listings as returned by the search and browse endpoints.
type ApartmentPage struct {
	TotalNumberOfItems int         `json:"total_number_of_apartments"`
	TotalPages         int         `json:"total_pages"`
	PreviousPage       *string     `json:"previous_page"`
	CurrentPage        int         `json:"current_page"`
	NextPage           *string     `json:"next_page"`
	Apartments         []Apartment `json:"apartments"`
}

type Place struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Amenity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ApartmentAmenity struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Amenity  Amenity `json:"amenity"`
}

type Image struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Apartment struct {
	ID             string             `json:"id"`
	User           User               `json:"user"`
	Country        Place              `json:"country"`
	State          Place              `json:"state"`
	City           Place              `json:"city"`
	School         Place              `json:"school"`
	Amenities      []ApartmentAmenity `json:"amenities"`
	NearestBusStop string             `json:"nearest_bus_stop"`
	ListingType    string             `json:"listing_type"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Price          int64              `json:"price"`
	PriceDuration  string             `json:"price_duration"`
	AvailableFor   string             `json:"available_for"`
	IsTaken        bool               `json:"is_taken"`
	Images         []Image            `json:"images"`
	VideoLink      string             `json:"video_link"`
	AdvertDaysLeft int                `json:"advert_days_left"`
	AdvertExpTime  *time.Time         `json:"advert_exp_time"`
}

type School struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type City struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Schools []School `json:"schools"`
}

type State struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Cities  []City `json:"cities"`
}

type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Session struct {
	Message     string `json:"message"`
	AccessToken string `json:"access"`
}

type MessageInput struct {
	Receiver string `json:"receiver"`
	Text     string `json:"text"`
}

type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

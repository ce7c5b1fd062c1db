package domain

import "time"

// Restaurant represents a publicly visible restaurant record.
type Restaurant struct {
	ID                string
	RestaurantID      string
	Name              string
	URL               string
	Location          Location
	Cuisines          []string
	AverageCostForTwo float64
	PriceRange        int
	Currency          string
	AggregateRating   float64
	RatingText        string
	Votes             int
	Offers            []string
	Highlights        []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Location is the address block, with coordinates ordered [longitude, latitude].
type Location struct {
	Address     string
	Locality    string
	City        string
	CityID      int
	Zipcode     string
	CountryID   int
	Latitude    float64
	Longitude   float64
	Coordinates []float64
}

// RestaurantPage is one page of a paginated listing.
type RestaurantPage struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
	Items      []Restaurant
}

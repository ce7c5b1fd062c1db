package domain

// Restaurant is the canonical record produced by the normalizer and written to the store.
type Restaurant struct {
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
}

// Location holds the address block of a restaurant.
type Location struct {
	Address   string
	Locality  string
	City      string
	CityID    int
	Zipcode   string
	CountryID int
	Latitude  float64
	Longitude float64
}

// Coordinates returns the [longitude, latitude] pair stored alongside the location.
func (l Location) Coordinates() []float64 {
	return []float64{l.Longitude, l.Latitude}
}

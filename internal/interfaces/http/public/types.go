package public

import (
	"time"

	publicdomain "github.com/sngm3741/restaurant-directory/api/internal/public/domain"
)

type locationResponse struct {
	Address     string    `json:"address"`
	Locality    string    `json:"locality"`
	City        string    `json:"city"`
	CityID      int       `json:"city_id"`
	Zipcode     string    `json:"zipcode"`
	CountryID   int       `json:"country_id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Coordinates []float64 `json:"coordinates"`
}

type restaurantResponse struct {
	ID                string           `json:"_id"`
	RestaurantID      string           `json:"restaurant_id"`
	Name              string           `json:"name"`
	URL               string           `json:"url"`
	Location          locationResponse `json:"location"`
	Cuisines          []string         `json:"cuisines"`
	AverageCostForTwo float64          `json:"average_cost_for_two"`
	PriceRange        int              `json:"price_range"`
	Currency          string           `json:"currency"`
	AggregateRating   float64          `json:"aggregate_rating"`
	RatingText        string           `json:"rating_text"`
	Votes             int              `json:"votes"`
	Offers            []string         `json:"offers"`
	Highlights        []string         `json:"highlights"`
	CreatedAt         *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time       `json:"updatedAt,omitempty"`
}

type restaurantListResponse struct {
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
	Total      int64                `json:"total"`
	Data       []restaurantResponse `json:"data"`
}

func buildRestaurantResponse(r publicdomain.Restaurant) restaurantResponse {
	resp := restaurantResponse{
		ID:           r.ID,
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		URL:          r.URL,
		Location: locationResponse{
			Address:     r.Location.Address,
			Locality:    r.Location.Locality,
			City:        r.Location.City,
			CityID:      r.Location.CityID,
			Zipcode:     r.Location.Zipcode,
			CountryID:   r.Location.CountryID,
			Latitude:    r.Location.Latitude,
			Longitude:   r.Location.Longitude,
			Coordinates: append([]float64{}, r.Location.Coordinates...),
		},
		Cuisines:          append([]string{}, r.Cuisines...),
		AverageCostForTwo: r.AverageCostForTwo,
		PriceRange:        r.PriceRange,
		Currency:          r.Currency,
		AggregateRating:   r.AggregateRating,
		RatingText:        r.RatingText,
		Votes:             r.Votes,
		Offers:            append([]string{}, r.Offers...),
		Highlights:        append([]string{}, r.Highlights...),
	}
	if !r.CreatedAt.IsZero() {
		createdAt := r.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !r.UpdatedAt.IsZero() {
		updatedAt := r.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

func buildRestaurantResponses(items []publicdomain.Restaurant) []restaurantResponse {
	out := make([]restaurantResponse, 0, len(items))
	for _, item := range items {
		out = append(out, buildRestaurantResponse(item))
	}
	return out
}

package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	ingestdomain "github.com/sngm3741/restaurant-directory/api/internal/ingest/domain"
	publicdomain "github.com/sngm3741/restaurant-directory/api/internal/public/domain"
)

// RestaurantDocument は MongoDB 上でのレストランスキーマを Go 構造体として表現したもの。
type RestaurantDocument struct {
	ID                primitive.ObjectID `bson:"_id"`
	RestaurantID      string             `bson:"restaurant_id"`
	Name              string             `bson:"name"`
	URL               string             `bson:"url"`
	Location          LocationDocument   `bson:"location"`
	Cuisines          []string           `bson:"cuisines"`
	AverageCostForTwo float64            `bson:"average_cost_for_two"`
	PriceRange        int                `bson:"price_range"`
	Currency          string             `bson:"currency"`
	AggregateRating   float64            `bson:"aggregate_rating"`
	RatingText        string             `bson:"rating_text"`
	Votes             int                `bson:"votes"`
	Offers            []string           `bson:"offers"`
	Highlights        []string           `bson:"highlights"`
	CreatedAt         *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt         *time.Time         `bson:"updatedAt,omitempty"`
}

// LocationDocument は住所と座標の埋め込みドキュメント。coordinates は [経度, 緯度] の順。
type LocationDocument struct {
	Address     string    `bson:"address"`
	Locality    string    `bson:"locality"`
	City        string    `bson:"city"`
	CityID      int       `bson:"city_id"`
	Zipcode     string    `bson:"zipcode"`
	CountryID   int       `bson:"country_id"`
	Latitude    float64   `bson:"latitude"`
	Longitude   float64   `bson:"longitude"`
	Coordinates []float64 `bson:"coordinates"`
}

// newRestaurantDocument は正規化済みレコードに _id と作成・更新時刻を付与して挿入用ドキュメントにする。
func newRestaurantDocument(r ingestdomain.Restaurant, now time.Time) RestaurantDocument {
	return RestaurantDocument{
		ID:           primitive.NewObjectID(),
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		URL:          r.URL,
		Location: LocationDocument{
			Address:     r.Location.Address,
			Locality:    r.Location.Locality,
			City:        r.Location.City,
			CityID:      r.Location.CityID,
			Zipcode:     r.Location.Zipcode,
			CountryID:   r.Location.CountryID,
			Latitude:    r.Location.Latitude,
			Longitude:   r.Location.Longitude,
			Coordinates: r.Location.Coordinates(),
		},
		Cuisines:          nonNil(r.Cuisines),
		AverageCostForTwo: r.AverageCostForTwo,
		PriceRange:        r.PriceRange,
		Currency:          r.Currency,
		AggregateRating:   r.AggregateRating,
		RatingText:        r.RatingText,
		Votes:             r.Votes,
		Offers:            nonNil(r.Offers),
		Highlights:        nonNil(r.Highlights),
		CreatedAt:         &now,
		UpdatedAt:         &now,
	}
}

func mapRestaurantDocument(doc RestaurantDocument) publicdomain.Restaurant {
	createdAt := time.Time{}
	if doc.CreatedAt != nil {
		createdAt = *doc.CreatedAt
	}
	updatedAt := time.Time{}
	if doc.UpdatedAt != nil {
		updatedAt = *doc.UpdatedAt
	}

	coordinates := append([]float64{}, doc.Location.Coordinates...)
	if len(coordinates) != 2 {
		coordinates = []float64{doc.Location.Longitude, doc.Location.Latitude}
	}

	return publicdomain.Restaurant{
		ID:           doc.ID.Hex(),
		RestaurantID: doc.RestaurantID,
		Name:         doc.Name,
		URL:          doc.URL,
		Location: publicdomain.Location{
			Address:     doc.Location.Address,
			Locality:    doc.Location.Locality,
			City:        doc.Location.City,
			CityID:      doc.Location.CityID,
			Zipcode:     doc.Location.Zipcode,
			CountryID:   doc.Location.CountryID,
			Latitude:    doc.Location.Latitude,
			Longitude:   doc.Location.Longitude,
			Coordinates: coordinates,
		},
		Cuisines:          append([]string{}, doc.Cuisines...),
		AverageCostForTwo: doc.AverageCostForTwo,
		PriceRange:        doc.PriceRange,
		Currency:          doc.Currency,
		AggregateRating:   doc.AggregateRating,
		RatingText:        doc.RatingText,
		Votes:             doc.Votes,
		Offers:            append([]string{}, doc.Offers...),
		Highlights:        append([]string{}, doc.Highlights...),
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

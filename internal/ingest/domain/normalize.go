package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SyntheticIDPrefix marks restaurant ids derived from record content because the dump carried none.
const SyntheticIDPrefix = "synthetic-"

var syntheticNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("restaurant_id"))

// Normalize converts one raw dump object into the canonical record.
// 欠損・不正な値はすべて既定値 (0 / "" / 空配列) に落とし、エラーは返さない。
func Normalize(raw RawRecord) Restaurant {
	location := objectField(raw, "location")
	rating := objectField(raw, "user_rating")

	r := Restaurant{
		Name: coerceString(raw["name"]),
		URL:  coerceString(raw["url"]),
		Location: Location{
			Address:   coerceString(location["address"]),
			Locality:  coerceString(location["locality"]),
			City:      coerceString(location["city"]),
			CityID:    coerceInt(location["city_id"]),
			Zipcode:   coerceString(location["zipcode"]),
			CountryID: coerceInt(location["country_id"]),
			Latitude:  coerceFloat(location["latitude"]),
			Longitude: coerceFloat(location["longitude"]),
		},
		Cuisines:          splitCuisines(raw["cuisines"]),
		AverageCostForTwo: coerceFloat(raw["average_cost_for_two"]),
		PriceRange:        coerceInt(raw["price_range"]),
		Currency:          coerceString(raw["currency"]),
		AggregateRating:   coerceFloat(rating["aggregate_rating"]),
		RatingText:        coerceString(rating["rating_text"]),
		Votes:             coerceInt(rating["votes"]),
		Offers:            stringList(raw["offers"]),
		Highlights:        establishmentTypes(raw["establishment_types"]),
	}

	r.RestaurantID = restaurantID(raw)
	if r.RestaurantID == "" {
		r.RestaurantID = SyntheticID(r)
	}
	return r
}

// SyntheticID derives a stable id from the url, or from name, address and coordinates when the url is empty.
func SyntheticID(r Restaurant) string {
	key := strings.TrimSpace(r.URL)
	if key == "" {
		key = strings.Join([]string{
			strings.TrimSpace(r.Name),
			strings.TrimSpace(r.Location.Address),
			strings.TrimSpace(r.Location.Locality),
			strings.TrimSpace(r.Location.City),
			strconv.FormatFloat(r.Location.Latitude, 'f', -1, 64),
			strconv.FormatFloat(r.Location.Longitude, 'f', -1, 64),
		}, "|")
	}
	return SyntheticIDPrefix + uuid.NewSHA1(syntheticNamespace, []byte(key)).String()
}

// IsSynthetic reports whether id was produced by SyntheticID.
func IsSynthetic(id string) bool {
	return strings.HasPrefix(id, SyntheticIDPrefix)
}

func restaurantID(raw RawRecord) string {
	if id := strings.TrimSpace(coerceString(raw["id"])); id != "" {
		return id
	}
	return strings.TrimSpace(coerceString(objectField(raw, "R")["res_id"]))
}

func objectField(raw map[string]any, key string) map[string]any {
	if raw == nil {
		return nil
	}
	obj, _ := raw[key].(map[string]any)
	return obj
}

// truthy follows the loose truthiness of the dumps: null, false, 0, "" and NaN count as absent.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	case float64:
		return v != 0 && !math.IsNaN(v)
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		return true
	}
}

func coerceString(value any) string {
	if !truthy(value) {
		return ""
	}
	s, _ := scalarString(value)
	return s
}

// scalarString renders strings, numbers and booleans as text. Objects, arrays and null are not scalars.
func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func coerceFloat(value any) float64 {
	if !truthy(value) {
		return 0
	}

	var f float64
	switch v := value.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case bool:
		f = 1
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// coerceInt truncates toward zero and saturates at the int range.
func coerceInt(value any) int {
	f := math.Trunc(coerceFloat(value))
	switch {
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}

func splitCuisines(value any) []string {
	cuisines := []string{}
	switch v := value.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cuisines = append(cuisines, part)
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					cuisines = append(cuisines, s)
				}
			}
		}
	}
	return cuisines
}

func stringList(value any) []string {
	result := []string{}
	items, ok := value.([]any)
	if !ok {
		return result
	}
	for _, item := range items {
		if s, ok := scalarString(item); ok {
			result = append(result, s)
		}
	}
	return result
}

// establishmentTypes accepts scalars and {"establishment_type": {"name": ...}} entries.
func establishmentTypes(value any) []string {
	result := []string{}
	items, ok := value.([]any)
	if !ok {
		return result
	}
	for _, item := range items {
		if v, ok := item.(map[string]any); ok {
			if name := coerceString(objectField(v, "establishment_type")["name"]); name != "" {
				result = append(result, name)
			}
			continue
		}
		if s, ok := scalarString(item); ok {
			result = append(result, s)
		}
	}
	return result
}

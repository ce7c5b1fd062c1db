package application

import (
	"context"
	"errors"

	"github.com/sngm3741/restaurant-directory/api/internal/public/domain"
)

// ErrNotFound is returned when a lookup target is absent or cannot identify a record.
var ErrNotFound = errors.New("restaurant not found")

const (
	DefaultPageLimit  = 10
	MaxPageLimit      = 100
	DefaultSearchSize = 20
)

// RestaurantRepository abstracts read access to restaurants.
// RestaurantRepository は Public コンテキストでレストランを読み取るためのポート。
type RestaurantRepository interface {
	Search(ctx context.Context, keyword string, limit int) ([]domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	FindByRestaurantID(ctx context.Context, restaurantID string) (*domain.Restaurant, error)
	List(ctx context.Context, paging Paging) ([]domain.Restaurant, error)
	Count(ctx context.Context) (int64, error)
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// Normalized clamps page and limit into their accepted ranges.
func (p Paging) Normalized() Paging {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Skip is the number of records before the page.
func (p Paging) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// RestaurantQueryService describes read use-cases.
// RestaurantQueryService はレストラン参照ユースケースを提供するリーダーモデル。
type RestaurantQueryService interface {
	Search(ctx context.Context, keyword string) ([]domain.Restaurant, error)
	Detail(ctx context.Context, id string) (*domain.Restaurant, error)
	DetailByRestaurantID(ctx context.Context, restaurantID string) (*domain.Restaurant, error)
	List(ctx context.Context, paging Paging) (*domain.RestaurantPage, error)
}

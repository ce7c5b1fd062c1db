package application

import (
	"context"
	"strings"

	"github.com/sngm3741/restaurant-directory/api/internal/public/domain"
)

// restaurantQueryService is the concrete implementation of RestaurantQueryService.
type restaurantQueryService struct {
	repo        RestaurantRepository
	searchLimit int
}

// NewRestaurantQueryService creates a new restaurant query service.
func NewRestaurantQueryService(repo RestaurantRepository, searchLimit int) RestaurantQueryService {
	if searchLimit <= 0 {
		searchLimit = DefaultSearchSize
	}
	return &restaurantQueryService{repo: repo, searchLimit: searchLimit}
}

func (s *restaurantQueryService) Search(ctx context.Context, keyword string) ([]domain.Restaurant, error) {
	return s.repo.Search(ctx, strings.TrimSpace(keyword), s.searchLimit)
}

func (s *restaurantQueryService) Detail(ctx context.Context, id string) (*domain.Restaurant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *restaurantQueryService) DetailByRestaurantID(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	restaurantID = strings.TrimSpace(restaurantID)
	if restaurantID == "" {
		return nil, ErrNotFound
	}
	return s.repo.FindByRestaurantID(ctx, restaurantID)
}

func (s *restaurantQueryService) List(ctx context.Context, paging Paging) (*domain.RestaurantPage, error) {
	paging = paging.Normalized()

	items, err := s.repo.List(ctx, paging)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(paging.Limit) - 1) / int64(paging.Limit))
	return &domain.RestaurantPage{
		Page:       paging.Page,
		Limit:      paging.Limit,
		Total:      total,
		TotalPages: totalPages,
		Items:      items,
	}, nil
}

package application

import (
	"context"

	"github.com/sngm3741/restaurant-directory/api/internal/ingest/domain"
)

// Dedupe keeps one record per restaurant id. Output follows first appearance; the value is the last one seen.
func Dedupe(records []domain.Restaurant) ([]domain.Restaurant, int) {
	index := make(map[string]int, len(records))
	unique := make([]domain.Restaurant, 0, len(records))
	for _, r := range records {
		if pos, ok := index[r.RestaurantID]; ok {
			unique[pos] = r
			continue
		}
		index[r.RestaurantID] = len(unique)
		unique = append(unique, r)
	}
	return unique, len(records) - len(unique)
}

// Reconcile drops records whose restaurant id is already stored, using a single existence query.
func Reconcile(ctx context.Context, store RestaurantStore, records []domain.Restaurant) ([]domain.Restaurant, int, error) {
	if len(records) == 0 {
		return nil, 0, nil
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.RestaurantID)
	}

	existing, err := store.ExistingRestaurantIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	fresh := make([]domain.Restaurant, 0, len(records))
	for _, r := range records {
		if _, ok := existing[r.RestaurantID]; ok {
			continue
		}
		fresh = append(fresh, r)
	}
	return fresh, len(records) - len(fresh), nil
}

// Write bulk-inserts records without ordering. An empty batch makes no store call.
func Write(ctx context.Context, store RestaurantStore, records []domain.Restaurant) (InsertResult, error) {
	if len(records) == 0 {
		return InsertResult{}, nil
	}
	return store.InsertMany(ctx, records)
}

package application

import (
	"context"

	"github.com/sngm3741/restaurant-directory/api/internal/ingest/domain"
)

// memoryStore is an in-memory RestaurantStore that enforces restaurant_id uniqueness like the unique index does.
type memoryStore struct {
	rows             map[string]domain.Restaurant
	rejectIDs        map[string]string
	existsErr        error
	insertErr        error
	existenceQueries int
	insertCalls      int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[string]domain.Restaurant)}
}

func (s *memoryStore) seed(ids ...string) {
	for _, id := range ids {
		s.rows[id] = domain.Restaurant{RestaurantID: id}
	}
}

func (s *memoryStore) ExistingRestaurantIDs(_ context.Context, ids []string) (map[string]struct{}, error) {
	s.existenceQueries++
	if s.existsErr != nil {
		return nil, s.existsErr
	}
	found := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := s.rows[id]; ok {
			found[id] = struct{}{}
		}
	}
	return found, nil
}

func (s *memoryStore) InsertMany(_ context.Context, restaurants []domain.Restaurant) (InsertResult, error) {
	s.insertCalls++
	var result InsertResult
	if s.insertErr != nil {
		for _, r := range restaurants {
			result.Failed = append(result.Failed, InsertFailure{RestaurantID: r.RestaurantID, Reason: s.insertErr.Error()})
		}
		return result, s.insertErr
	}
	for _, r := range restaurants {
		if reason, ok := s.rejectIDs[r.RestaurantID]; ok {
			result.Failed = append(result.Failed, InsertFailure{RestaurantID: r.RestaurantID, Reason: reason})
			continue
		}
		if _, ok := s.rows[r.RestaurantID]; ok {
			result.Failed = append(result.Failed, InsertFailure{RestaurantID: r.RestaurantID, Reason: "E11000 duplicate key error"})
			continue
		}
		s.rows[r.RestaurantID] = r
		result.Inserted = append(result.Inserted, r.RestaurantID)
	}
	return result, nil
}

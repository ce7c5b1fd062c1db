package application

import (
	"context"
	"errors"

	"github.com/sngm3741/restaurant-directory/api/internal/ingest/domain"
)

// ErrStoreUnavailable marks store failures that must abort the whole ingestion run.
var ErrStoreUnavailable = errors.New("restaurant store unavailable")

// RestaurantStore is the write-side port the loader needs from persistence.
// RestaurantStore は取り込みパイプラインが永続化層に要求するポート。
type RestaurantStore interface {
	// ExistingRestaurantIDs returns the subset of ids already stored, in one round trip.
	ExistingRestaurantIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
	// InsertMany performs an unordered bulk insert. Per-record failures are reported in
	// the result; the error is reserved for failures of the call as a whole.
	InsertMany(ctx context.Context, restaurants []domain.Restaurant) (InsertResult, error)
}

// InsertResult reports the outcome of one unordered bulk insert.
type InsertResult struct {
	Inserted []string
	Failed   []InsertFailure
	// WriteConcern holds a write concern error reported alongside the per-record outcome.
	WriteConcern string
}

// InsertFailure is one record the store refused.
type InsertFailure struct {
	RestaurantID string
	Reason       string
}

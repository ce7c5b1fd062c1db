package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/sngm3741/restaurant-directory/api/internal/public/application"
	"github.com/sngm3741/restaurant-directory/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RestaurantRepository implements application.RestaurantRepository using MongoDB.
type RestaurantRepository struct {
	collection *mongo.Collection
}

// NewRestaurantRepository creates a new Mongo-backed restaurant repository.
func NewRestaurantRepository(db *mongo.Database, collectionName string) *RestaurantRepository {
	return &RestaurantRepository{collection: db.Collection(collectionName)}
}

// Search matches keyword literally and case-insensitively against name or any cuisine.
func (r *RestaurantRepository) Search(ctx context.Context, keyword string, limit int) ([]domain.Restaurant, error) {
	filter := bson.M{}
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"cuisines": regex},
		}
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

// FindByID returns a single restaurant by its ObjectID hex. Malformed ids are reported as not found.
func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

// FindByRestaurantID returns a single restaurant by its business identifier.
func (r *RestaurantRepository) FindByRestaurantID(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	return r.findOne(ctx, bson.M{"restaurant_id": restaurantID})
}

// List returns one page ordered by _id so consecutive pages never overlap.
func (r *RestaurantRepository) List(ctx context.Context, paging application.Paging) ([]domain.Restaurant, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(paging.Skip()).
		SetLimit(int64(paging.Limit))
	return r.find(ctx, bson.M{}, opts)
}

// Count returns the number of stored restaurants.
func (r *RestaurantRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

func (r *RestaurantRepository) find(ctx context.Context, filter any, opts *options.FindOptions) ([]domain.Restaurant, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := make([]domain.Restaurant, 0)
	for cursor.Next(ctx) {
		var doc RestaurantDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, mapRestaurantDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *RestaurantRepository) findOne(ctx context.Context, filter any) (*domain.Restaurant, error) {
	var doc RestaurantDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	restaurant := mapRestaurantDocument(doc)
	return &restaurant, nil
}

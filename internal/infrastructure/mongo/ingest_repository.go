package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sngm3741/restaurant-directory/api/internal/ingest/application"
	ingestdomain "github.com/sngm3741/restaurant-directory/api/internal/ingest/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IngestRepository は取り込みパイプライン向けの書き込み側 Mongo 実装。
type IngestRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewIngestRepository は MongoDB コレクションを束縛した IngestRepository を生成する。
func NewIngestRepository(db *mongo.Database, collectionName string) *IngestRepository {
	return &IngestRepository{collection: db.Collection(collectionName), now: time.Now}
}

// EnsureIndexes は restaurant_id の一意制約と name の検索用インデックスを作成する。既存なら何もしない。
func (r *IngestRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "restaurant_id", Value: 1}},
			Options: options.Index().SetName("uniq_restaurant_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_restaurant_name"),
		},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return wrapStoreError(err)
	}
	return nil
}

// ExistingRestaurantIDs は ids のうち既に保存済みのものを 1 回の $in クエリで返す。
func (r *IngestRepository) ExistingRestaurantIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	found := make(map[string]struct{})
	if len(ids) == 0 {
		return found, nil
	}

	opts := options.Find().SetProjection(bson.D{{Key: "restaurant_id", Value: 1}, {Key: "_id", Value: 0}})
	cursor, err := r.collection.Find(ctx, bson.M{"restaurant_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc struct {
			RestaurantID string `bson:"restaurant_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		found[doc.RestaurantID] = struct{}{}
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapStoreError(err)
	}
	return found, nil
}

// InsertMany は ordered=false で一括挿入し、レコード単位の失敗を InsertResult に振り分ける。
func (r *IngestRepository) InsertMany(ctx context.Context, restaurants []ingestdomain.Restaurant) (application.InsertResult, error) {
	if len(restaurants) == 0 {
		return application.InsertResult{}, nil
	}

	now := r.now().UTC()
	docs := make([]interface{}, 0, len(restaurants))
	for _, restaurant := range restaurants {
		docs = append(docs, newRestaurantDocument(restaurant, now))
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return mapInsertResult(restaurants, err)
}

// mapInsertResult は BulkWriteException の writeErrors をインデックスで元レコードへ対応付ける。
// writeConcernError は書き込み済みの判定を変えず、WriteConcern に載せて返す。
// それ以外のエラーはバッチ全体の失敗として扱う。
func mapInsertResult(restaurants []ingestdomain.Restaurant, err error) (application.InsertResult, error) {
	var result application.InsertResult

	if err == nil {
		for _, restaurant := range restaurants {
			result.Inserted = append(result.Inserted, restaurant.RestaurantID)
		}
		return result, nil
	}

	var bulkErr mongo.BulkWriteException
	if errors.As(err, &bulkErr) && (len(bulkErr.WriteErrors) > 0 || bulkErr.WriteConcernError != nil) {
		if bulkErr.WriteConcernError != nil {
			result.WriteConcern = bulkErr.WriteConcernError.Message
		}
		failed := make(map[int]string, len(bulkErr.WriteErrors))
		for _, writeErr := range bulkErr.WriteErrors {
			failed[writeErr.Index] = writeErr.Message
		}
		for i, restaurant := range restaurants {
			if reason, ok := failed[i]; ok {
				result.Failed = append(result.Failed, application.InsertFailure{RestaurantID: restaurant.RestaurantID, Reason: reason})
				continue
			}
			result.Inserted = append(result.Inserted, restaurant.RestaurantID)
		}
		return result, nil
	}

	for _, restaurant := range restaurants {
		result.Failed = append(result.Failed, application.InsertFailure{RestaurantID: restaurant.RestaurantID, Reason: err.Error()})
	}
	return result, wrapStoreError(err)
}

// wrapStoreError は接続断を ErrStoreUnavailable として包み、実行全体を止められるようにする。
// 呼び出し側のコンテキスト期限切れは対象外で、ファイル単位の失敗として扱われる。
func wrapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", application.ErrStoreUnavailable, err)
	}
	return err
}

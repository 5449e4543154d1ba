// card/store/lookup_store.go
package store

import (
	"context"
	"fmt"

	"github.com/Ftotnem/lichess-stats/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LookupStore is the MongoDB audit log of stats card requests.
type LookupStore struct {
	collection *mongo.Collection
}

// NewLookupStore creates a new LookupStore instance.
func NewLookupStore(collection *mongo.Collection) *LookupStore {
	return &LookupStore{
		collection: collection,
	}
}

// EnsureIndexes creates the per-user and time-ordered indexes operators query by.
func (ls *LookupStore) EnsureIndexes(ctx context.Context) error {
	_, err := ls.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "requested_at", Value: -1}}},
		{Keys: bson.D{{Key: "requested_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create lookup indexes: %w", err)
	}
	return nil
}

// RecordLookup inserts one lookup record.
func (ls *LookupStore) RecordLookup(ctx context.Context, record *models.LookupRecord) error {
	if _, err := ls.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to record lookup %s for %s: %w", record.ID, record.Username, err)
	}
	return nil
}

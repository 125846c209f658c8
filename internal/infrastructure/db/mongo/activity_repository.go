package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/core/ports"
)

const collectionActivity = "marketplace_activity"

var _ ports.ActivitySink = (*ActivityRepository)(nil)

// ActivityRepository appends marketplace activity to an audit collection.
// Nothing reads it back into the stores.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

type activityDoc struct {
	Kind       string    `bson:"kind"`
	Key        string    `bson:"key"`
	ActorID    string    `bson:"actor_id,omitempty"`
	JobID      string    `bson:"job_id,omitempty"`
	BidID      string    `bson:"bid_id,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// Record inserts a single activity event.
func (r *ActivityRepository) Record(ctx context.Context, event domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := activityDoc{
		Kind:       string(event.Kind),
		Key:        event.Key,
		ActorID:    event.ActorID,
		JobID:      event.JobID,
		BidID:      event.BidID,
		OccurredAt: event.Timestamp.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on the activity collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "key", Value: 1}, {Key: "occurred_at", Value: 1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

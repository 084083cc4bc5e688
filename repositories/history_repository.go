package repositories

import (
	"context"
	"fmt"

	"github.com/alienigenasfc/pelada-system/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HistoryRepository is the append-only archive of finished and
// abandoned tournaments, ordered by finish time descending.
type HistoryRepository interface {
	List(ctx context.Context) ([]models.HistoryEntry, error)
	// Append stores the entry, replacing any earlier entry with the
	// same tournament id so a double finalize never duplicates.
	Append(ctx context.Context, entry *models.HistoryEntry) error
}

type mongoHistoryRepository struct {
	collection *mongo.Collection
}

func NewMongoHistoryRepository(db *mongo.Database) HistoryRepository {
	return &mongoHistoryRepository{collection: db.Collection(CollectionHistory)}
}

func (r *mongoHistoryRepository) List(ctx context.Context) ([]models.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "finished_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]models.HistoryEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history entries: %w", err)
	}
	return entries, nil
}

func (r *mongoHistoryRepository) Append(ctx context.Context, entry *models.HistoryEntry) error {
	if _, err := r.collection.DeleteMany(ctx, bson.D{{Key: "id", Value: entry.ID}}); err != nil {
		return fmt.Errorf("failed to deduplicate history for tournament %s: %w", entry.ID, err)
	}
	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/alienigenasfc/pelada-system/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RosterRepository persists the single roster document.
type RosterRepository interface {
	Get(ctx context.Context) (*models.Roster, error)
	Save(ctx context.Context, roster *models.Roster) error
}

type rosterDocument struct {
	ID        string          `bson:"_id"`
	Players   []models.Player `bson:"players"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

type mongoRosterRepository struct {
	collection *mongo.Collection
}

func NewMongoRosterRepository(db *mongo.Database) RosterRepository {
	return &mongoRosterRepository{collection: db.Collection(CollectionAppState)}
}

// Get returns the stored roster, or an empty roster when none was ever
// saved.
func (r *mongoRosterRepository) Get(ctx context.Context) (*models.Roster, error) {
	var doc rosterDocument
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: docIDRoster}}).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return &models.Roster{Players: []models.Player{}}, nil
		}
		return nil, fmt.Errorf("failed to fetch roster document: %w", err)
	}
	if doc.Players == nil {
		doc.Players = []models.Player{}
	}
	return &models.Roster{Players: doc.Players}, nil
}

// Save replaces the whole roster document in one write.
func (r *mongoRosterRepository) Save(ctx context.Context, roster *models.Roster) error {
	doc := rosterDocument{
		ID:        docIDRoster,
		Players:   roster.Players,
		UpdatedAt: time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: docIDRoster}}, doc, opts); err != nil {
		return fmt.Errorf("failed to save roster document: %w", err)
	}
	return nil
}

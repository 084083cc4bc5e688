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

// TournamentRepository is the single-slot store for the active
// tournament. Save always writes the whole snapshot so a concurrent
// reader never observes a partial mutation.
type TournamentRepository interface {
	Get(ctx context.Context) (*models.Tournament, error)
	Save(ctx context.Context, tournament *models.Tournament) error
	Clear(ctx context.Context) error
}

type tournamentDocument struct {
	ID        string             `bson:"_id"`
	Data      *models.Tournament `bson:"data"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type mongoTournamentRepository struct {
	collection *mongo.Collection
}

func NewMongoTournamentRepository(db *mongo.Database) TournamentRepository {
	return &mongoTournamentRepository{collection: db.Collection(CollectionAppState)}
}

// Get returns the active tournament, or nil when the slot is empty.
func (r *mongoTournamentRepository) Get(ctx context.Context) (*models.Tournament, error) {
	var doc tournamentDocument
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: docIDTournament}}).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch tournament document: %w", err)
	}
	return doc.Data, nil
}

func (r *mongoTournamentRepository) Save(ctx context.Context, tournament *models.Tournament) error {
	doc := tournamentDocument{
		ID:        docIDTournament,
		Data:      tournament,
		UpdatedAt: time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: docIDTournament}}, doc, opts); err != nil {
		return fmt.Errorf("failed to save tournament document: %w", err)
	}
	return nil
}

// Clear empties the slot. The document stays with a nil payload so the
// update is a whole-snapshot write like Save.
func (r *mongoTournamentRepository) Clear(ctx context.Context) error {
	return r.Save(ctx, nil)
}

package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names. app_state holds the two fixed-id snapshot documents
// (roster and tournament); history and users are ordinary collections.
const (
	CollectionAppState = "app_state"
	CollectionHistory  = "history"
	CollectionUsers    = "users"
)

// Fixed document ids within app_state.
const (
	docIDRoster     = "roster"
	docIDTournament = "tournament"
)

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

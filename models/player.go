package models

// Player is a person registered in the shared roster.
type Player struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Roster is the single document of the roster collection.
type Roster struct {
	Players []Player `json:"players" bson:"players"`
}

// FindPlayer returns the player with the given id, or nil.
func (r *Roster) FindPlayer(id string) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// PlayerName resolves a player id to its current name, or "???" when the
// player has been removed from the roster.
func (r *Roster) PlayerName(id string) string {
	if p := r.FindPlayer(id); p != nil {
		return p.Name
	}
	return "???"
}

package models

import "time"

// Champion is the computed record of a tournament winner: the team, its
// final standing line and its roster at the time of victory.
type Champion struct {
	TeamID    string   `json:"team_id" bson:"team_id"`
	TeamName  string   `json:"team_name" bson:"team_name"`
	TeamColor string   `json:"team_color" bson:"team_color"`
	Points    int      `json:"points" bson:"points"`
	Won       int      `json:"won" bson:"won"`
	Drawn     int      `json:"drawn" bson:"drawn"`
	Lost      int      `json:"lost" bson:"lost"`
	GoalsFor  int      `json:"goals_for" bson:"goals_for"`
	GoalsAg   int      `json:"goals_against" bson:"goals_against"`
	GoalDiff  int      `json:"goal_diff" bson:"goal_diff"`
	PlayerIDs []string `json:"player_ids" bson:"player_ids"`
}

// HistoryEntry is an immutable snapshot of a finished or abandoned
// tournament. PlayerSnapshot maps player id → name at finish time, so
// all-time statistics survive later roster deletions.
type HistoryEntry struct {
	Tournament     `bson:",inline"`
	FinishedAt     time.Time         `json:"finished_at" bson:"finished_at"`
	Champion       *Champion         `json:"champion,omitempty" bson:"champion,omitempty"`
	PlayerSnapshot map[string]string `json:"player_snapshot" bson:"player_snapshot"`
}

// ResolvePlayerName prefers the snapshot taken at finish time and falls
// back to the supplied resolver for players archived before snapshots
// existed.
func (h *HistoryEntry) ResolvePlayerName(playerID string, fallback func(string) string) string {
	if name, ok := h.PlayerSnapshot[playerID]; ok && name != "" {
		return name
	}
	if fallback != nil {
		return fallback(playerID)
	}
	return "???"
}

package models

type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "pending"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusFinished   MatchStatus = "finished"
)

// Goal is one entry of the ordered goal log of a match.
type Goal struct {
	TeamID   string `json:"team_id" bson:"team_id"`
	PlayerID string `json:"player_id" bson:"player_id"`
}

// Match is a single round of the 9-round schedule.
//
// Invariant: HomeScore and AwayScore always equal the number of goals in
// Goals attributed to each side. Goal recording and removal must keep
// both in sync.
type Match struct {
	Round          int         `json:"round" bson:"round"`
	HomeTeamID     string      `json:"home_team_id" bson:"home_team_id"`
	AwayTeamID     string      `json:"away_team_id" bson:"away_team_id"`
	HomeScore      int         `json:"home_score" bson:"home_score"`
	AwayScore      int         `json:"away_score" bson:"away_score"`
	HomeGoalkeeper string      `json:"home_goalkeeper,omitempty" bson:"home_goalkeeper,omitempty"`
	AwayGoalkeeper string      `json:"away_goalkeeper,omitempty" bson:"away_goalkeeper,omitempty"`
	Goals          []Goal      `json:"goals" bson:"goals"`
	Status         MatchStatus `json:"status" bson:"status"`
}

// HasTeam reports whether the team plays in this match.
func (m *Match) HasTeam(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// WinnerTeamID returns the winning team id, or "" on a draw.
func (m *Match) WinnerTeamID() string {
	switch {
	case m.HomeScore > m.AwayScore:
		return m.HomeTeamID
	case m.AwayScore > m.HomeScore:
		return m.AwayTeamID
	default:
		return ""
	}
}

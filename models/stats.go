package models

// ScorerStat is one line of a top-scorers table.
type ScorerStat struct {
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Goals    int      `json:"goals"`
	TeamIDs  []string `json:"team_ids,omitempty"`
	// Tournaments counts tournaments with at least one goal; only
	// populated by the all-time aggregation.
	Tournaments int `json:"tournaments,omitempty"`
}

// GoalkeeperStat is one line of a goalkeeper leaderboard.
type GoalkeeperStat struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	Matches      int    `json:"matches"`
	GoalsAgainst int    `json:"goals_against"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	CleanSheets  int    `json:"clean_sheets"`
}

// AverageGoalsAgainst returns goals against per match; callers treat a
// keeper with no matches as ranking last.
func (g *GoalkeeperStat) AverageGoalsAgainst() (float64, bool) {
	if g.Matches == 0 {
		return 0, false
	}
	return float64(g.GoalsAgainst) / float64(g.Matches), true
}

// ChampionStat credits a player with tournament titles.
type ChampionStat struct {
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Titles   int      `json:"titles"`
	Teams    []string `json:"teams"`
}

// AppearanceStat counts finished matches a player's team took part in.
type AppearanceStat struct {
	PlayerID          string `json:"player_id"`
	Name              string `json:"name"`
	GamesPlayed       int    `json:"games_played"`
	TournamentsPlayed int    `json:"tournaments_played"`
}

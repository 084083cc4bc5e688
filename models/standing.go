package models

// TeamStanding is one line of the league table.
type TeamStanding struct {
	TeamID       string `json:"team_id" bson:"team_id"`
	Name         string `json:"name" bson:"name"`
	Color        string `json:"color" bson:"color"`
	Played       int    `json:"played" bson:"played"`
	Won          int    `json:"won" bson:"won"`
	Drawn        int    `json:"drawn" bson:"drawn"`
	Lost         int    `json:"lost" bson:"lost"`
	GoalsFor     int    `json:"goals_for" bson:"goals_for"`
	GoalsAgainst int    `json:"goals_against" bson:"goals_against"`
	GoalDiff     int    `json:"goal_diff" bson:"goal_diff"`
	Points       int    `json:"points" bson:"points"`
}

// HeadToHead aggregates the sub-series between two specific teams.
// Fields are from team A's perspective.
type HeadToHead struct {
	APoints       int `json:"a_points"`
	BPoints       int `json:"b_points"`
	AGoalsFor     int `json:"a_goals_for"`
	AGoalsAgainst int `json:"a_goals_against"`
}

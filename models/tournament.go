package models

import "time"

// TotalRounds is the fixed length of the winner-stays schedule.
const TotalRounds = 9

// TournamentStatus moves strictly forward: setup → scheduling →
// in_progress → finished.
type TournamentStatus string

const (
	TournamentStatusSetup      TournamentStatus = "setup"
	TournamentStatusScheduling TournamentStatus = "scheduling"
	TournamentStatusInProgress TournamentStatus = "in_progress"
	TournamentStatusFinished   TournamentStatus = "finished"
	// TournamentStatusAbandoned only ever appears on history snapshots.
	TournamentStatusAbandoned TournamentStatus = "abandoned"
)

// MatchSelection records the manual team choice for round 1.
type MatchSelection struct {
	Home string `json:"home,omitempty" bson:"home,omitempty"`
	Away string `json:"away,omitempty" bson:"away,omitempty"`
}

// Tournament is the single active aggregate. At most one exists at a
// time; a finished or abandoned tournament is archived into history and
// the slot is cleared.
type Tournament struct {
	ID        string           `json:"id" bson:"id"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	Status    TournamentStatus `json:"status" bson:"status"`
	Teams     []Team           `json:"teams" bson:"teams"`
	Matches   []Match          `json:"matches" bson:"matches"`

	// Scheduling state for the winner-stays rotation.
	Match1Selection   MatchSelection `json:"match1_selection" bson:"match1_selection"`
	StayTeam          string         `json:"stay_team,omitempty" bson:"stay_team,omitempty"`
	LeavingTeam       string         `json:"leaving_team,omitempty" bson:"leaving_team,omitempty"`
	RestingTeam       string         `json:"resting_team,omitempty" bson:"resting_team,omitempty"`
	ScheduleGenerated bool           `json:"schedule_generated" bson:"schedule_generated"`
}

// FindTeam returns the team with the given id, or nil.
func (t *Tournament) FindTeam(teamID string) *Team {
	for i := range t.Teams {
		if t.Teams[i].ID == teamID {
			return &t.Teams[i]
		}
	}
	return nil
}

// CurrentMatchIndex returns the index of the in-progress match, the
// first pending match when none is live, or -1.
func (t *Tournament) CurrentMatchIndex() int {
	for i := range t.Matches {
		if t.Matches[i].Status == MatchStatusInProgress {
			return i
		}
	}
	for i := range t.Matches {
		if t.Matches[i].Status == MatchStatusPending {
			return i
		}
	}
	return -1
}

// FinishedMatches returns the finished matches in schedule order.
func (t *Tournament) FinishedMatches() []Match {
	out := make([]Match, 0, len(t.Matches))
	for _, m := range t.Matches {
		if m.Status == MatchStatusFinished {
			out = append(out, m)
		}
	}
	return out
}

// AllMatchesFinished reports whether every scheduled match is finished.
// False when no matches exist yet.
func (t *Tournament) AllMatchesFinished() bool {
	if len(t.Matches) == 0 {
		return false
	}
	for _, m := range t.Matches {
		if m.Status != MatchStatusFinished {
			return false
		}
	}
	return true
}

// PlayerInTeams reports whether the player is assigned to any team.
func (t *Tournament) PlayerInTeams(playerID string) bool {
	for i := range t.Teams {
		if t.Teams[i].HasPlayer(playerID) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the tournament, safe to archive or hand
// to another goroutine.
func (t *Tournament) Clone() *Tournament {
	cp := *t
	cp.Teams = make([]Team, len(t.Teams))
	for i, team := range t.Teams {
		cp.Teams[i] = team
		cp.Teams[i].Players = append([]string(nil), team.Players...)
	}
	cp.Matches = make([]Match, len(t.Matches))
	for i, m := range t.Matches {
		cp.Matches[i] = m
		cp.Matches[i].Goals = append([]Goal(nil), m.Goals...)
	}
	return &cp
}

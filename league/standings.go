package league

import (
	"sort"

	"github.com/alienigenasfc/pelada-system/models"
)

// Points awarded per finished match.
const (
	WinPoints  = 3
	DrawPoints = 1
	LossPoints = 0
)

// Standings computes the ranked table of a tournament from its finished
// matches only. Pure: calling it twice on the same snapshot yields the
// same ordered result, and residual ties keep the tournament's team
// order.
//
// Tie-break cascade: points, head-to-head points between the two
// compared teams, goal difference, goals scored.
func Standings(t *models.Tournament) []models.TeamStanding {
	if t == nil {
		return nil
	}

	index := make(map[string]int, len(t.Teams))
	table := make([]models.TeamStanding, len(t.Teams))
	for i, team := range t.Teams {
		index[team.ID] = i
		table[i] = models.TeamStanding{
			TeamID: team.ID,
			Name:   team.Name,
			Color:  team.Color,
		}
	}

	for _, m := range t.FinishedMatches() {
		hi, ok := index[m.HomeTeamID]
		if !ok {
			continue
		}
		ai, ok := index[m.AwayTeamID]
		if !ok {
			continue
		}
		home, away := &table[hi], &table[ai]

		home.Played++
		away.Played++
		home.GoalsFor += m.HomeScore
		home.GoalsAgainst += m.AwayScore
		away.GoalsFor += m.AwayScore
		away.GoalsAgainst += m.HomeScore

		switch {
		case m.HomeScore > m.AwayScore:
			home.Won++
			home.Points += WinPoints
			away.Lost++
		case m.AwayScore > m.HomeScore:
			away.Won++
			away.Points += WinPoints
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points += DrawPoints
			away.Points += DrawPoints
		}

		home.GoalDiff = home.GoalsFor - home.GoalsAgainst
		away.GoalDiff = away.GoalsFor - away.GoalsAgainst
	}

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		h2h := HeadToHead(t, a.TeamID, b.TeamID)
		if h2h.APoints != h2h.BPoints {
			return h2h.APoints > h2h.BPoints
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		return a.GoalsFor > b.GoalsFor
	})

	return table
}

// HeadToHead aggregates points and goals over the finished matches
// played between exactly teams A and B, from A's perspective.
func HeadToHead(t *models.Tournament, teamAID, teamBID string) models.HeadToHead {
	var h models.HeadToHead
	if t == nil {
		return h
	}
	for _, m := range t.FinishedMatches() {
		pair := (m.HomeTeamID == teamAID && m.AwayTeamID == teamBID) ||
			(m.HomeTeamID == teamBID && m.AwayTeamID == teamAID)
		if !pair {
			continue
		}

		aScore, bScore := m.HomeScore, m.AwayScore
		if m.HomeTeamID != teamAID {
			aScore, bScore = bScore, aScore
		}

		h.AGoalsFor += aScore
		h.AGoalsAgainst += bScore

		switch {
		case aScore > bScore:
			h.APoints += WinPoints
		case bScore > aScore:
			h.BPoints += WinPoints
		default:
			h.APoints += DrawPoints
			h.BPoints += DrawPoints
		}
	}
	return h
}

// Champion returns the top of the table as a champion record, or nil
// when the tournament has no teams.
func Champion(t *models.Tournament) *models.Champion {
	table := Standings(t)
	if len(table) == 0 {
		return nil
	}
	top := table[0]
	var roster []string
	if team := t.FindTeam(top.TeamID); team != nil {
		roster = append([]string(nil), team.Players...)
	}
	return &models.Champion{
		TeamID:    top.TeamID,
		TeamName:  top.Name,
		TeamColor: top.Color,
		Points:    top.Points,
		Won:       top.Won,
		Drawn:     top.Drawn,
		Lost:      top.Lost,
		GoalsFor:  top.GoalsFor,
		GoalsAg:   top.GoalsAgainst,
		GoalDiff:  top.GoalDiff,
		PlayerIDs: roster,
	}
}

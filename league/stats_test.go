package league

import (
	"testing"
	"time"

	"github.com/alienigenasfc/pelada-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNames = map[string]string{
	"p1": "Rafa", "p2": "Dudu", "p3": "Kaique",
	"p4": "Tom", "p5": "Neto", "p6": "Careca",
}

func nameOf(pid string) string {
	if name, ok := testNames[pid]; ok {
		return name
	}
	return "???"
}

func TestTopScorers(t *testing.T) {
	tour := &models.Tournament{
		Teams: threeTeams(),
		Matches: []models.Match{
			{
				HomeTeamID: "verde", AwayTeamID: "amarelo",
				HomeScore: 3, AwayScore: 1,
				Goals: []models.Goal{
					{TeamID: "verde", PlayerID: "p1"},
					{TeamID: "amarelo", PlayerID: "p3"},
					{TeamID: "verde", PlayerID: "p1"},
					{TeamID: "verde", PlayerID: "p2"},
				},
				Status: models.MatchStatusFinished,
			},
			{
				// In-progress goals never count.
				HomeTeamID: "verde", AwayTeamID: "azul",
				HomeScore: 1, AwayScore: 0,
				Goals:  []models.Goal{{TeamID: "verde", PlayerID: "p2"}},
				Status: models.MatchStatusInProgress,
			},
		},
	}

	scorers := TopScorers(tour, nameOf)
	require.Len(t, scorers, 3)

	assert.Equal(t, "p1", scorers[0].PlayerID)
	assert.Equal(t, "Rafa", scorers[0].Name)
	assert.Equal(t, 2, scorers[0].Goals)
	assert.Equal(t, []string{"verde"}, scorers[0].TeamIDs)

	// p3 scored before p2; on equal goals first-goal order holds.
	assert.Equal(t, "p3", scorers[1].PlayerID)
	assert.Equal(t, "p2", scorers[2].PlayerID)
}

func keeperMatch(homeGK, awayGK string, hs, as int) models.Match {
	return models.Match{
		HomeTeamID: "verde", AwayTeamID: "amarelo",
		HomeScore: hs, AwayScore: as,
		HomeGoalkeeper: homeGK, AwayGoalkeeper: awayGK,
		Status: models.MatchStatusFinished,
	}
}

func TestGoalkeeperStats(t *testing.T) {
	tour := &models.Tournament{
		Teams: threeTeams(),
		Matches: []models.Match{
			keeperMatch("p1", "p3", 2, 0), // p1 clean sheet win, p3 concedes 2
			keeperMatch("p1", "p3", 1, 1), // both concede 1
			keeperMatch("p5", "p3", 0, 0), // p5 clean sheet draw, p3 clean sheet
		},
	}

	keepers := GoalkeeperStats(tour, nameOf)
	require.Len(t, keepers, 3)

	// p5: 0.0 average. p1: 0.5. p3: 1.0.
	assert.Equal(t, "p5", keepers[0].PlayerID)
	assert.Equal(t, 1, keepers[0].Matches)
	assert.Equal(t, 1, keepers[0].CleanSheets)

	assert.Equal(t, "p1", keepers[1].PlayerID)
	assert.Equal(t, 2, keepers[1].Matches)
	assert.Equal(t, 1, keepers[1].GoalsAgainst)
	assert.Equal(t, 1, keepers[1].Wins)
	assert.Equal(t, 1, keepers[1].Draws)
	assert.Equal(t, 1, keepers[1].CleanSheets)

	assert.Equal(t, "p3", keepers[2].PlayerID)
	assert.Equal(t, 3, keepers[2].GoalsAgainst)
	assert.Equal(t, 1, keepers[2].Losses)
	avg, ok := keepers[2].AverageGoalsAgainst()
	require.True(t, ok)
	assert.InDelta(t, 1.0, avg, 0.0001)
}

func TestGoalkeeperZeroMatchesRanksLast(t *testing.T) {
	stat := models.GoalkeeperStat{PlayerID: "px"}
	_, ok := stat.AverageGoalsAgainst()
	assert.False(t, ok)
}

func archivedTournament(id, championTeam string) models.HistoryEntry {
	tour := models.Tournament{
		ID:     id,
		Status: models.TournamentStatusFinished,
		Teams: []models.Team{
			{ID: "verde", Name: "Verde", Players: []string{"p1", "p2"}},
			{ID: "amarelo", Name: "Amarelo", Players: []string{"p3", "p4"}},
			{ID: "azul", Name: "Azul", Players: []string{"p5", "p6"}},
		},
		Matches: []models.Match{
			{
				HomeTeamID: "verde", AwayTeamID: "amarelo",
				HomeScore: 2, AwayScore: 0,
				HomeGoalkeeper: "p2", AwayGoalkeeper: "p4",
				Goals: []models.Goal{
					{TeamID: "verde", PlayerID: "p1"},
					{TeamID: "verde", PlayerID: "p1"},
				},
				Status: models.MatchStatusFinished,
			},
		},
	}
	var champion *models.Champion
	if team := tour.FindTeam(championTeam); team != nil {
		champion = &models.Champion{
			TeamID:    team.ID,
			TeamName:  team.Name,
			PlayerIDs: append([]string(nil), team.Players...),
		}
	}
	return models.HistoryEntry{
		Tournament: tour,
		FinishedAt: time.Now(),
		Champion:   champion,
		PlayerSnapshot: map[string]string{
			"p1": "Rafa", "p2": "Dudu", "p3": "Kaique",
			"p4": "Tom", "p5": "Neto", "p6": "Careca",
		},
	}
}

func TestAllTimeChampions(t *testing.T) {
	history := []models.HistoryEntry{
		archivedTournament("t1", "verde"),
		archivedTournament("t2", "verde"),
	}

	champs := AllTimeChampions(history, nameOf)
	require.Len(t, champs, 2)
	assert.Equal(t, "p1", champs[0].PlayerID)
	assert.Equal(t, 2, champs[0].Titles)
	assert.Equal(t, []string{"Verde", "Verde"}, champs[0].Teams)
	assert.Equal(t, 2, champs[1].Titles)
}

func TestAllTimeIgnoresAbandonedEntries(t *testing.T) {
	abandoned := archivedTournament("t3", "verde")
	abandoned.Status = models.TournamentStatusAbandoned
	abandoned.Champion = nil

	champs := AllTimeChampions([]models.HistoryEntry{abandoned}, nameOf)
	assert.Empty(t, champs)

	scorers := AllTimeTopScorers([]models.HistoryEntry{abandoned}, nil, nameOf)
	assert.Empty(t, scorers)
}

func TestAllTimeTopScorersAcrossTournaments(t *testing.T) {
	history := []models.HistoryEntry{
		archivedTournament("t1", "verde"),
		archivedTournament("t2", "verde"),
	}
	current := &models.Tournament{
		Status: models.TournamentStatusInProgress,
		Teams:  threeTeams(),
		Matches: []models.Match{
			{
				HomeTeamID: "verde", AwayTeamID: "azul",
				HomeScore: 1, AwayScore: 1,
				Goals: []models.Goal{
					{TeamID: "verde", PlayerID: "p1"},
					{TeamID: "azul", PlayerID: "p5"},
				},
				Status: models.MatchStatusFinished,
			},
		},
	}

	scorers := AllTimeTopScorers(history, current, nameOf)
	require.NotEmpty(t, scorers)

	assert.Equal(t, "p1", scorers[0].PlayerID)
	assert.Equal(t, 5, scorers[0].Goals)       // 2+2 archived, 1 live
	assert.Equal(t, 3, scorers[0].Tournaments) // scored in all three

	var p5 models.ScorerStat
	for _, s := range scorers {
		if s.PlayerID == "p5" {
			p5 = s
		}
	}
	assert.Equal(t, 1, p5.Goals)
	assert.Equal(t, 1, p5.Tournaments)
}

func TestAllTimeNamesPreferSnapshot(t *testing.T) {
	entry := archivedTournament("t1", "verde")
	entry.PlayerSnapshot["p1"] = "Rafa (2019)"

	// The roster no longer knows p1: the fallback returns the deleted
	// marker, but the archive keeps the name from finish time.
	deletedResolver := func(pid string) string { return "???" }

	scorers := AllTimeTopScorers([]models.HistoryEntry{entry}, nil, deletedResolver)
	require.NotEmpty(t, scorers)
	assert.Equal(t, "Rafa (2019)", scorers[0].Name)

	champs := AllTimeChampions([]models.HistoryEntry{entry}, deletedResolver)
	require.NotEmpty(t, champs)
	assert.Equal(t, "Rafa (2019)", champs[0].Name)
}

func TestAllTimeGamesPlayed(t *testing.T) {
	history := []models.HistoryEntry{archivedTournament("t1", "verde")}
	current := &models.Tournament{
		Teams: []models.Team{
			{ID: "verde", Players: []string{"p1"}},
			{ID: "amarelo", Players: []string{"p3"}},
			{ID: "azul", Players: []string{"p5"}},
		},
		Matches: []models.Match{
			{HomeTeamID: "verde", AwayTeamID: "azul", Status: models.MatchStatusFinished},
			{HomeTeamID: "verde", AwayTeamID: "amarelo", Status: models.MatchStatusFinished},
		},
	}

	stats := AllTimeGamesPlayed(history, current, nameOf)
	require.NotEmpty(t, stats)

	byID := map[string]models.AppearanceStat{}
	for _, s := range stats {
		byID[s.PlayerID] = s
	}

	// p1 played 1 archived match plus 2 live ones, in 2 tournaments.
	assert.Equal(t, 3, byID["p1"].GamesPlayed)
	assert.Equal(t, 2, byID["p1"].TournamentsPlayed)
	// p5 rested the archived final but plays now.
	assert.Equal(t, 1, byID["p5"].GamesPlayed)
	// Sorted by games played.
	assert.Equal(t, "p1", stats[0].PlayerID)
}

func TestAllTimeGoalkeeperStats(t *testing.T) {
	history := []models.HistoryEntry{archivedTournament("t1", "verde")}

	keepers := AllTimeGoalkeeperStats(history, nil, nameOf)
	require.Len(t, keepers, 2)
	assert.Equal(t, "p2", keepers[0].PlayerID) // clean sheet, 0 avg
	assert.Equal(t, 1, keepers[0].CleanSheets)
	assert.Equal(t, "p4", keepers[1].PlayerID)
	assert.Equal(t, 2, keepers[1].GoalsAgainst)
}

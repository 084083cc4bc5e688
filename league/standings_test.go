package league

import (
	"testing"

	"github.com/alienigenasfc/pelada-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finished(home, away string, hs, as int) models.Match {
	return models.Match{
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  hs,
		AwayScore:  as,
		Status:     models.MatchStatusFinished,
	}
}

func tableTournament(matches ...models.Match) *models.Tournament {
	return &models.Tournament{
		ID:     "t1",
		Status: models.TournamentStatusInProgress,
		Teams:  threeTeams(),
		Matches: append([]models.Match{
			// A pending match must never count.
			{HomeTeamID: "verde", AwayTeamID: "amarelo", HomeScore: 9, AwayScore: 9, Status: models.MatchStatusPending},
		}, matches...),
	}
}

func TestStandingsPointsOrder(t *testing.T) {
	tour := tableTournament(
		finished("verde", "amarelo", 2, 0),
		finished("verde", "azul", 1, 1),
		finished("amarelo", "azul", 0, 3),
	)

	table := Standings(tour)
	require.Len(t, table, 3)

	// verde and azul are level on points and drew their meeting, so
	// goal difference puts azul first.
	assert.Equal(t, "azul", table[0].TeamID)
	assert.Equal(t, 4, table[0].Points)
	assert.Equal(t, "verde", table[1].TeamID)
	assert.Equal(t, 4, table[1].Points)
	assert.Equal(t, "amarelo", table[2].TeamID)
	assert.Equal(t, 0, table[2].Points)

	assert.Equal(t, 2, table[0].Played)
	assert.Equal(t, 1, table[0].Won)
	assert.Equal(t, 1, table[0].Drawn)
	assert.Equal(t, 4, table[0].GoalsFor)
	assert.Equal(t, 1, table[0].GoalsAgainst)
	assert.Equal(t, 3, table[0].GoalDiff)
}

func TestStandingsHeadToHeadBeatsGoalDiff(t *testing.T) {
	// verde and amarelo both finish on 6 points. amarelo has by far the
	// better goal difference, but verde won the direct meeting.
	tour := tableTournament(
		finished("verde", "amarelo", 1, 0),
		finished("verde", "azul", 1, 0),
		finished("amarelo", "azul", 4, 0),
		finished("amarelo", "azul", 4, 0),
	)

	table := Standings(tour)
	require.Len(t, table, 3)
	assert.Equal(t, 6, table[0].Points)
	assert.Equal(t, 6, table[1].Points)
	assert.Equal(t, "verde", table[0].TeamID)
	assert.Equal(t, "amarelo", table[1].TeamID)
	assert.Greater(t, table[1].GoalDiff, table[0].GoalDiff)
}

func TestStandingsGoalDiffThenGoalsFor(t *testing.T) {
	// Level points, drawn head-to-head: goal difference decides.
	tour := tableTournament(
		finished("verde", "amarelo", 1, 1),
		finished("verde", "azul", 3, 0),
		finished("amarelo", "azul", 2, 0),
	)
	table := Standings(tour)
	assert.Equal(t, "verde", table[0].TeamID)
	assert.Equal(t, "amarelo", table[1].TeamID)

	// Level on everything but goals scored.
	tour = tableTournament(
		finished("verde", "amarelo", 0, 0),
		finished("verde", "azul", 3, 2),
		finished("amarelo", "azul", 2, 1),
	)
	table = Standings(tour)
	assert.Equal(t, "verde", table[0].TeamID)
	assert.Equal(t, 3, table[0].GoalsFor)
	assert.Equal(t, "amarelo", table[1].TeamID)
	assert.Equal(t, 2, table[1].GoalsFor)
}

func TestStandingsEmptyKeepsTeamOrder(t *testing.T) {
	tour := &models.Tournament{Teams: threeTeams(), Matches: []models.Match{}}

	table := Standings(tour)
	require.Len(t, table, 3)
	assert.Equal(t, "verde", table[0].TeamID)
	assert.Equal(t, "amarelo", table[1].TeamID)
	assert.Equal(t, "azul", table[2].TeamID)
	for _, line := range table {
		assert.Zero(t, line.Played)
		assert.Zero(t, line.Points)
	}
}

func TestStandingsIsPure(t *testing.T) {
	tour := tableTournament(
		finished("verde", "amarelo", 2, 1),
		finished("verde", "azul", 0, 0),
	)
	first := Standings(tour)
	second := Standings(tour)
	assert.Equal(t, first, second)
}

func TestStandingsPointsMatchResults(t *testing.T) {
	tour := tableTournament(
		finished("verde", "amarelo", 2, 1),
		finished("verde", "azul", 0, 0),
		finished("amarelo", "azul", 1, 3),
		finished("verde", "amarelo", 1, 1),
	)
	table := Standings(tour)

	totalPoints := 0
	wins, draws := 0, 0
	for _, line := range table {
		totalPoints += line.Points
		wins += line.Won
		draws += line.Drawn
	}
	// Every decided match is worth 3 points total, every draw 2.
	assert.Equal(t, wins*WinPoints+draws*DrawPoints, totalPoints)
	assert.Equal(t, 2, wins)
	assert.Equal(t, 4, draws) // two drawn matches, both sides credited
}

func TestHeadToHead(t *testing.T) {
	tour := tableTournament(
		finished("verde", "amarelo", 2, 0),
		finished("amarelo", "verde", 1, 1),
		finished("verde", "azul", 5, 0), // not part of the pair
	)

	h := HeadToHead(tour, "verde", "amarelo")
	assert.Equal(t, 4, h.APoints)
	assert.Equal(t, 1, h.BPoints)
	assert.Equal(t, 3, h.AGoalsFor)
	assert.Equal(t, 1, h.AGoalsAgainst)

	// Same pair from the other side.
	h = HeadToHead(tour, "amarelo", "verde")
	assert.Equal(t, 1, h.APoints)
	assert.Equal(t, 4, h.BPoints)
	assert.Equal(t, 1, h.AGoalsFor)
	assert.Equal(t, 3, h.AGoalsAgainst)
}

func TestChampion(t *testing.T) {
	tour := tableTournament(
		finished("verde", "amarelo", 2, 0),
		finished("azul", "verde", 0, 1),
	)

	champ := Champion(tour)
	require.NotNil(t, champ)
	assert.Equal(t, "verde", champ.TeamID)
	assert.Equal(t, "Verde", champ.TeamName)
	assert.Equal(t, 6, champ.Points)
	assert.Equal(t, []string{"p1", "p2"}, champ.PlayerIDs)

	assert.Nil(t, Champion(&models.Tournament{}))
}

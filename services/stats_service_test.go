package services

import (
	"context"
	"testing"

	"github.com/alienigenasfc/pelada-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsWithoutTournament(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.stats.Standings(ctx)
	assert.ErrorIs(t, err, ErrNoActiveTournament)
	_, err = env.stats.TopScorers(ctx)
	assert.ErrorIs(t, err, ErrNoActiveTournament)

	// All-time views still work on an empty slot.
	assert.Empty(t, env.stats.AllTimeChampions(ctx))
	assert.Empty(t, env.stats.History(ctx))
}

func TestStatsFollowLiveTournament(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamIDs := env.startedTournament(t)
	require.NoError(t, env.match.SelectRoundOneTeams(ctx, admin, teamIDs[0], teamIDs[1]))
	require.NoError(t, finishCurrentMatch(t, env, 0))

	table, err := env.stats.Standings(ctx)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, teamIDs[0], table[0].TeamID)
	assert.Equal(t, 3, table[0].Points)

	scorers, err := env.stats.TopScorers(ctx)
	require.NoError(t, err)
	require.Len(t, scorers, 1)
	assert.Equal(t, 1, scorers[0].Goals)
	assert.NotEmpty(t, scorers[0].Name)

	keepers, err := env.stats.GoalkeeperStats(ctx)
	require.NoError(t, err)
	assert.Len(t, keepers, 2)

	h2h, err := env.stats.HeadToHead(ctx, teamIDs[0], teamIDs[1])
	require.NoError(t, err)
	assert.Equal(t, 3, h2h.APoints)
	assert.Equal(t, 0, h2h.BPoints)

	_, err = env.stats.HeadToHead(ctx, teamIDs[0], "ghost")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestAllTimeStatsSurviveRosterDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamIDs := env.startedTournament(t)
	require.NoError(t, env.match.SelectRoundOneTeams(ctx, admin, teamIDs[0], teamIDs[1]))
	for round := 0; round < models.TotalRounds; round++ {
		require.NoError(t, finishCurrentMatch(t, env, 0))
	}

	champBefore := env.stats.AllTimeChampions(ctx)
	require.NotEmpty(t, champBefore)
	championID := champBefore[0].PlayerID
	championName := champBefore[0].Name
	require.NotEqual(t, "???", championName)

	// The tournament is archived, so its players can leave the roster.
	require.NoError(t, env.tournament.ResetTournament(ctx, admin))
	require.NoError(t, env.roster.RemovePlayer(ctx, admin, championID))

	champAfter := env.stats.AllTimeChampions(ctx)
	require.NotEmpty(t, champAfter)
	assert.Equal(t, championName, champAfter[0].Name)

	scorers := env.stats.AllTimeTopScorers(ctx)
	require.NotEmpty(t, scorers)
	assert.NotEqual(t, "???", scorers[0].Name)
}

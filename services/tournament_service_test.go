package services

import (
	"context"
	"testing"

	"github.com/alienigenasfc/pelada-system/league"
	"github.com/alienigenasfc/pelada-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTournament(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Needs at least three registered players.
	env.seedPlayers(t, 2)
	_, err := env.tournament.CreateTournament(ctx, admin)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)

	env.seedPlayers(t, 1)
	tour, err := env.tournament.CreateTournament(ctx, captain)
	require.NoError(t, err)

	assert.Equal(t, models.TournamentStatusSetup, tour.Status)
	require.Len(t, tour.Teams, 3)
	assert.Equal(t, "Verde", tour.Teams[0].Name)
	assert.Equal(t, "#4CAF50", tour.Teams[0].Color)
	assert.Equal(t, "Amarelo", tour.Teams[1].Name)
	assert.Equal(t, "Azul Claro", tour.Teams[2].Name)
	assert.Empty(t, tour.Matches)

	// Single active slot.
	_, err = env.tournament.CreateTournament(ctx, admin)
	assert.ErrorIs(t, err, ErrTournamentExists)

	// Whole snapshot was written through.
	require.NotNil(t, env.tournamentRepo.saved)
	assert.Equal(t, tour.ID, env.tournamentRepo.saved.ID)
}

func TestCreateTournamentPolicy(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(t, 3)

	_, err := env.tournament.CreateTournament(context.Background(), viewer)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAssignPlayerIsExclusive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.seedPlayers(t, 3)
	tour, err := env.tournament.CreateTournament(ctx, admin)
	require.NoError(t, err)

	teamA, teamB := tour.Teams[0].ID, tour.Teams[1].ID
	require.NoError(t, env.tournament.AssignPlayer(ctx, captain, ids[0], teamA))
	require.NoError(t, env.tournament.AssignPlayer(ctx, captain, ids[0], teamB))

	snap := env.state.TournamentSnapshot()
	assert.Empty(t, snap.FindTeam(teamA).Players)
	assert.Equal(t, []string{ids[0]}, snap.FindTeam(teamB).Players)

	err = env.tournament.AssignPlayer(ctx, captain, "ghost", teamA)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	err = env.tournament.AssignPlayer(ctx, captain, ids[0], "ghost")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestAssignPlayerOnlyDuringSetup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamIDs := env.startedTournament(t)

	ids := env.state.RosterSnapshot()
	err := env.tournament.AssignPlayer(ctx, admin, ids[0].ID, teamIDs[0])
	assert.ErrorIs(t, err, ErrTournamentNotInSetup)
}

func TestRemovePlayerFromTeam(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.seedPlayers(t, 3)
	tour, err := env.tournament.CreateTournament(ctx, admin)
	require.NoError(t, err)

	teamA := tour.Teams[0].ID
	require.NoError(t, env.tournament.AssignPlayer(ctx, admin, ids[0], teamA))
	require.NoError(t, env.tournament.RemovePlayerFromTeam(ctx, admin, ids[0], teamA))

	assert.Empty(t, env.state.TournamentSnapshot().FindTeam(teamA).Players)
}

func TestStartTournamentNeedsFullTeams(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.seedPlayers(t, 3)
	tour, err := env.tournament.CreateTournament(ctx, admin)
	require.NoError(t, err)

	err = env.tournament.StartTournament(ctx, admin)
	assert.ErrorIs(t, err, ErrTeamsUnderstaffed)

	for i, team := range tour.Teams {
		require.NoError(t, env.tournament.AssignPlayer(ctx, admin, ids[i], team.ID))
	}
	require.NoError(t, env.tournament.StartTournament(ctx, admin))
	assert.Equal(t, models.TournamentStatusScheduling, env.state.TournamentSnapshot().Status)

	err = env.tournament.StartTournament(ctx, admin)
	assert.ErrorIs(t, err, ErrTournamentNotInSetup)
}

func TestTeamEdits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamIDs := env.seedTournament(t)

	require.NoError(t, env.tournament.SetTeamName(ctx, admin, teamIDs[0], "  Galáticos "))
	snap := env.state.TournamentSnapshot()
	assert.Equal(t, "Galáticos", snap.FindTeam(teamIDs[0]).Name)

	assert.ErrorIs(t, env.tournament.SetTeamName(ctx, admin, teamIDs[0], "   "), ErrTeamNameRequired)
	assert.ErrorIs(t, env.tournament.SetTeamColor(ctx, admin, teamIDs[0], "#123456"), ErrUnknownColor)

	require.NoError(t, env.tournament.SetTeamColor(ctx, admin, teamIDs[0], "#f44336"))
	assert.Equal(t, "#f44336", env.state.TournamentSnapshot().FindTeam(teamIDs[0]).Color)

	require.NoError(t, env.tournament.SetTeamPreset(ctx, admin, teamIDs[0], 3))
	team := env.state.TournamentSnapshot().FindTeam(teamIDs[0])
	assert.Equal(t, "Azul SSW", team.Name)
	assert.Equal(t, "#1565C0", team.Color)

	assert.ErrorIs(t, env.tournament.SetTeamPreset(ctx, admin, teamIDs[0], 9), ErrUnknownPreset)

	// Team identity is admin-only.
	assert.ErrorIs(t, env.tournament.SetTeamName(ctx, captain, teamIDs[0], "X"), ErrPermissionDenied)
}

func TestResetWithoutFinishedMatchesLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedTournament(t)

	require.NoError(t, env.tournament.ResetTournament(ctx, captain))

	assert.Nil(t, env.state.TournamentSnapshot())
	assert.Empty(t, env.state.HistorySnapshot())
	assert.Empty(t, env.historyRepo.entries)
	assert.Equal(t, 1, env.tournamentRepo.clears)
	assert.True(t, env.hub.hasEventType(league.EventTournamentCleared))
}

func TestResetAfterPlayArchivesAbandoned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teamIDs := env.startedTournament(t)
	require.NoError(t, env.match.SelectRoundOneTeams(ctx, admin, teamIDs[0], teamIDs[1]))
	require.NoError(t, finishCurrentMatch(t, env, 0))

	require.NoError(t, env.tournament.ResetTournament(ctx, admin))

	assert.Nil(t, env.state.TournamentSnapshot())
	history := env.state.HistorySnapshot()
	require.Len(t, history, 1)
	assert.Equal(t, models.TournamentStatusAbandoned, history[0].Status)
	assert.Nil(t, history[0].Champion)
	assert.NotEmpty(t, history[0].PlayerSnapshot)

	assert.ErrorIs(t, env.tournament.ResetTournament(ctx, admin), ErrNoActiveTournament)
}

func TestGetTournamentReturnsCopy(t *testing.T) {
	env := newTestEnv(t)
	env.seedTournament(t)

	snap := env.tournament.GetTournament(context.Background())
	require.NotNil(t, snap)
	snap.Teams[0].Name = "mutated"

	assert.NotEqual(t, "mutated", env.state.TournamentSnapshot().Teams[0].Name)
}

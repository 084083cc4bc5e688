package services

import (
	"context"
	"testing"

	"github.com/alienigenasfc/pelada-system/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.roster.AddPlayer(ctx, admin, "  Rafa  ")
	require.NoError(t, err)
	assert.Equal(t, "Rafa", p.Name)
	assert.NotEmpty(t, p.ID)

	players := env.roster.ListPlayers(ctx)
	require.Len(t, players, 1)

	// The write went through and subscribers were notified.
	require.NotNil(t, env.rosterRepo.saved)
	assert.Len(t, env.rosterRepo.saved.Players, 1)
	assert.True(t, env.hub.hasEventType(league.EventRosterUpdated))
}

func TestAddPlayerValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.roster.AddPlayer(ctx, admin, "   ")
	assert.ErrorIs(t, err, ErrPlayerNameRequired)

	_, err = env.roster.AddPlayer(ctx, admin, "Rafa")
	require.NoError(t, err)
	_, err = env.roster.AddPlayer(ctx, admin, "rafa")
	assert.ErrorIs(t, err, ErrPlayerNameConflict)

	// Roster management is admin-only.
	_, err = env.roster.AddPlayer(ctx, captain, "Dudu")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = env.roster.AddPlayer(ctx, viewer, "Dudu")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRemovePlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.roster.AddPlayer(ctx, admin, "Rafa")
	require.NoError(t, err)

	require.NoError(t, env.roster.RemovePlayer(ctx, admin, p.ID))
	assert.Empty(t, env.roster.ListPlayers(ctx))

	assert.ErrorIs(t, env.roster.RemovePlayer(ctx, admin, p.ID), ErrPlayerNotFound)
}

func TestRemovePlayerBlockedWhileAssigned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.seedPlayers(t, 3)
	tour, err := env.tournament.CreateTournament(ctx, admin)
	require.NoError(t, err)
	require.NoError(t, env.tournament.AssignPlayer(ctx, admin, ids[0], tour.Teams[0].ID))

	err = env.roster.RemovePlayer(ctx, admin, ids[0])
	assert.ErrorIs(t, err, ErrPlayerInTournament)

	// Unassigned players can still be removed.
	require.NoError(t, env.roster.RemovePlayer(ctx, admin, ids[1]))
}

package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alienigenasfc/pelada-system/league"
	"github.com/alienigenasfc/pelada-system/models"
	"github.com/stretchr/testify/require"
)

// syncPersister runs every enqueued write immediately so tests observe
// the repositories synchronously.
type syncPersister struct {
	failures []error
}

func (p *syncPersister) Enqueue(name string, fn func(ctx context.Context) error) {
	if err := fn(context.Background()); err != nil {
		p.failures = append(p.failures, err)
	}
}

type fakeHub struct {
	events []league.Event
}

func (h *fakeHub) BroadcastToRoom(roomID string, event league.Event) {
	h.events = append(h.events, event)
}

func (h *fakeHub) lastEventType() string {
	if len(h.events) == 0 {
		return ""
	}
	return h.events[len(h.events)-1].Type
}

func (h *fakeHub) hasEventType(eventType string) bool {
	for _, e := range h.events {
		if e.Type == eventType {
			return true
		}
	}
	return false
}

type memRosterRepo struct {
	saved *models.Roster
	saves int
}

func (r *memRosterRepo) Get(ctx context.Context) (*models.Roster, error) {
	if r.saved == nil {
		return &models.Roster{Players: []models.Player{}}, nil
	}
	return r.saved, nil
}

func (r *memRosterRepo) Save(ctx context.Context, roster *models.Roster) error {
	r.saved = roster
	r.saves++
	return nil
}

type memTournamentRepo struct {
	saved  *models.Tournament
	saves  int
	clears int
}

func (r *memTournamentRepo) Get(ctx context.Context) (*models.Tournament, error) {
	return r.saved, nil
}

func (r *memTournamentRepo) Save(ctx context.Context, t *models.Tournament) error {
	r.saved = t
	r.saves++
	return nil
}

func (r *memTournamentRepo) Clear(ctx context.Context) error {
	r.saved = nil
	r.clears++
	return nil
}

type memHistoryRepo struct {
	entries []models.HistoryEntry
}

func (r *memHistoryRepo) List(ctx context.Context) ([]models.HistoryEntry, error) {
	return append([]models.HistoryEntry(nil), r.entries...), nil
}

func (r *memHistoryRepo) Append(ctx context.Context, entry *models.HistoryEntry) error {
	kept := r.entries[:0]
	for _, h := range r.entries {
		if h.ID != entry.ID {
			kept = append(kept, h)
		}
	}
	r.entries = append([]models.HistoryEntry{*entry}, kept...)
	return nil
}

var (
	admin   = models.Principal{UserID: "u-admin", Role: models.RoleAdmin}
	captain = models.Principal{UserID: "u-captain", Role: models.RoleCaptain}
	viewer  = models.Principal{UserID: "u-viewer", Role: models.RoleViewer}
)

// testEnv wires the full service stack against in-memory fakes.
type testEnv struct {
	state          *AppState
	rosterRepo     *memRosterRepo
	tournamentRepo *memTournamentRepo
	historyRepo    *memHistoryRepo
	hub            *fakeHub
	seeded         int

	roster     RosterService
	tournament TournamentService
	match      MatchService
	stats      StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	env := &testEnv{
		state:          NewAppState(),
		rosterRepo:     &memRosterRepo{},
		tournamentRepo: &memTournamentRepo{},
		historyRepo:    &memHistoryRepo{},
		hub:            &fakeHub{},
	}
	persister := &syncPersister{}
	env.roster = NewRosterService(env.state, env.rosterRepo, persister, env.hub)
	env.tournament = NewTournamentService(env.state, env.tournamentRepo, env.historyRepo, persister, env.hub, logger)
	env.match = NewMatchService(env.state, env.tournamentRepo, env.historyRepo, persister, env.hub, logger)
	env.stats = NewStatsService(env.state)
	return env
}

// seedPlayers registers n players named P1..Pn and returns their ids.
func (env *testEnv) seedPlayers(t *testing.T, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		p, err := env.roster.AddPlayer(context.Background(), admin, playerName(env.seeded+i))
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	env.seeded += n
	return ids
}

func playerName(i int) string {
	names := []string{"Rafa", "Dudu", "Kaique", "Tom", "Neto", "Careca", "Bia", "Leo", "Gui"}
	if i < len(names) {
		return names[i]
	}
	return names[i%len(names)] + " Jr"
}

// seedTournament creates a tournament with two players per team and
// returns the team ids in team-list order.
func (env *testEnv) seedTournament(t *testing.T) []string {
	t.Helper()
	ctx := context.Background()
	ids := env.seedPlayers(t, 6)

	tour, err := env.tournament.CreateTournament(ctx, admin)
	require.NoError(t, err)
	require.Len(t, tour.Teams, 3)

	teamIDs := make([]string, 3)
	for i, team := range tour.Teams {
		teamIDs[i] = team.ID
		require.NoError(t, env.tournament.AssignPlayer(ctx, admin, ids[2*i], team.ID))
		require.NoError(t, env.tournament.AssignPlayer(ctx, admin, ids[2*i+1], team.ID))
	}
	return teamIDs
}

// startedTournament seeds a tournament and moves it to scheduling.
func (env *testEnv) startedTournament(t *testing.T) []string {
	t.Helper()
	teamIDs := env.seedTournament(t)
	require.NoError(t, env.tournament.StartTournament(context.Background(), admin))
	return teamIDs
}

// currentMatch returns a snapshot of the match the engine is on.
func (env *testEnv) currentMatch(t *testing.T) (int, models.Match) {
	t.Helper()
	tour := env.state.TournamentSnapshot()
	require.NotNil(t, tour)
	idx := tour.CurrentMatchIndex()
	require.GreaterOrEqual(t, idx, 0)
	return idx, tour.Matches[idx]
}

package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/alienigenasfc/pelada-system/models"
	"github.com/alienigenasfc/pelada-system/repositories"
	"golang.org/x/sync/errgroup"
)

// StateData is the in-memory aggregate: roster, the single tournament
// slot (nil when empty) and the history cache. Mutations are applied
// here first; persistence to the store is enqueued afterwards.
type StateData struct {
	Roster     *models.Roster
	Tournament *models.Tournament
	History    []models.HistoryEntry
}

// AppState guards StateData with a mutex. It is the explicit
// single-slot holder of the active tournament; it is constructed in
// main and passed to every service, never a package-level variable.
type AppState struct {
	mu   sync.RWMutex
	data StateData
}

func NewAppState() *AppState {
	return &AppState{data: StateData{
		Roster:  &models.Roster{Players: []models.Player{}},
		History: []models.HistoryEntry{},
	}}
}

// Update runs fn under the write lock. When fn returns an error the
// mutation is considered rejected; fn must not leave partial changes
// behind in that case.
func (s *AppState) Update(fn func(st *StateData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

// View runs fn under the read lock. fn must not retain or mutate the
// state it sees.
func (s *AppState) View(fn func(st StateData)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// TournamentSnapshot returns a deep copy of the active tournament, or
// nil.
func (s *AppState) TournamentSnapshot() *models.Tournament {
	var t *models.Tournament
	s.View(func(st StateData) {
		if st.Tournament != nil {
			t = st.Tournament.Clone()
		}
	})
	return t
}

// RosterSnapshot returns a copy of the roster players.
func (s *AppState) RosterSnapshot() []models.Player {
	var players []models.Player
	s.View(func(st StateData) {
		players = append([]models.Player(nil), st.Roster.Players...)
	})
	return players
}

// HistorySnapshot returns a copy of the cached history.
func (s *AppState) HistorySnapshot() []models.HistoryEntry {
	var history []models.HistoryEntry
	s.View(func(st StateData) {
		history = append([]models.HistoryEntry(nil), st.History...)
	})
	return history
}

// playerName resolves against the in-memory roster; used as the
// fallback name resolver for statistics.
func (s *AppState) playerName(playerID string) string {
	name := "???"
	s.View(func(st StateData) {
		name = st.Roster.PlayerName(playerID)
	})
	return name
}

// LoadState fills the in-memory state from the store, fetching the
// three documents in parallel. Called once at startup before the
// server accepts requests.
func LoadState(ctx context.Context, state *AppState, rosterRepo repositories.RosterRepository, tournamentRepo repositories.TournamentRepository, historyRepo repositories.HistoryRepository) error {
	var (
		roster     *models.Roster
		tournament *models.Tournament
		history    []models.HistoryEntry
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = rosterRepo.Get(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		tournament, err = tournamentRepo.Get(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = historyRepo.List(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load state from store: %w", err)
	}

	return state.Update(func(st *StateData) error {
		st.Roster = roster
		st.Tournament = tournament
		st.History = history
		return nil
	})
}

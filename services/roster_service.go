package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/alienigenasfc/pelada-system/league"
	"github.com/alienigenasfc/pelada-system/models"
	"github.com/alienigenasfc/pelada-system/repositories"
	"github.com/google/uuid"
)

// RosterService manages the shared player registry.
type RosterService interface {
	ListPlayers(ctx context.Context) []models.Player
	AddPlayer(ctx context.Context, actor models.Principal, name string) (*models.Player, error)
	RemovePlayer(ctx context.Context, actor models.Principal, playerID string) error
}

type rosterService struct {
	state      *AppState
	rosterRepo repositories.RosterRepository
	persister  Persister
	hub        Broadcaster
}

func NewRosterService(state *AppState, rosterRepo repositories.RosterRepository, persister Persister, hub Broadcaster) RosterService {
	return &rosterService{
		state:      state,
		rosterRepo: rosterRepo,
		persister:  persister,
		hub:        hub,
	}
}

func (s *rosterService) ListPlayers(ctx context.Context) []models.Player {
	return s.state.RosterSnapshot()
}

func (s *rosterService) AddPlayer(ctx context.Context, actor models.Principal, name string) (*models.Player, error) {
	if err := authorize(OpManageRoster, actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	var created models.Player
	err := s.state.Update(func(st *StateData) error {
		for _, p := range st.Roster.Players {
			if strings.EqualFold(p.Name, name) {
				return fmt.Errorf("%w: %s", ErrPlayerNameConflict, name)
			}
		}
		created = models.Player{ID: uuid.NewString(), Name: name}
		st.Roster.Players = append(st.Roster.Players, created)
		persistRoster(s.persister, s.rosterRepo, st)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToRoom(league.LiveRoom, league.Event{Type: league.EventRosterUpdated})
	return &created, nil
}

func (s *rosterService) RemovePlayer(ctx context.Context, actor models.Principal, playerID string) error {
	if err := authorize(OpManageRoster, actor); err != nil {
		return err
	}

	err := s.state.Update(func(st *StateData) error {
		if st.Roster.FindPlayer(playerID) == nil {
			return ErrPlayerNotFound
		}
		// A player on a team of the active tournament cannot be
		// removed; archived tournaments keep their own name snapshot.
		if st.Tournament != nil && st.Tournament.PlayerInTeams(playerID) {
			return ErrPlayerInTournament
		}
		kept := st.Roster.Players[:0]
		for _, p := range st.Roster.Players {
			if p.ID != playerID {
				kept = append(kept, p)
			}
		}
		st.Roster.Players = kept
		persistRoster(s.persister, s.rosterRepo, st)
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.BroadcastToRoom(league.LiveRoom, league.Event{Type: league.EventRosterUpdated})
	return nil
}

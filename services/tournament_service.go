package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/alienigenasfc/pelada-system/league"
	"github.com/alienigenasfc/pelada-system/models"
	"github.com/alienigenasfc/pelada-system/repositories"
	"github.com/google/uuid"
)

// TournamentService owns the lifecycle of the single active tournament
// up to the point matches start: creation, team setup, player
// assignment and the abandon path.
type TournamentService interface {
	GetTournament(ctx context.Context) *models.Tournament
	CreateTournament(ctx context.Context, actor models.Principal) (*models.Tournament, error)
	ResetTournament(ctx context.Context, actor models.Principal) error
	SetTeamName(ctx context.Context, actor models.Principal, teamID, name string) error
	SetTeamColor(ctx context.Context, actor models.Principal, teamID, color string) error
	SetTeamPreset(ctx context.Context, actor models.Principal, teamID string, presetIndex int) error
	AssignPlayer(ctx context.Context, actor models.Principal, playerID, teamID string) error
	RemovePlayerFromTeam(ctx context.Context, actor models.Principal, playerID, teamID string) error
	StartTournament(ctx context.Context, actor models.Principal) error
}

type tournamentService struct {
	state          *AppState
	tournamentRepo repositories.TournamentRepository
	historyRepo    repositories.HistoryRepository
	persister      Persister
	hub            Broadcaster
	logger         *slog.Logger
	now            func() time.Time
}

func NewTournamentService(
	state *AppState,
	tournamentRepo repositories.TournamentRepository,
	historyRepo repositories.HistoryRepository,
	persister Persister,
	hub Broadcaster,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		state:          state,
		tournamentRepo: tournamentRepo,
		historyRepo:    historyRepo,
		persister:      persister,
		hub:            hub,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *tournamentService) GetTournament(ctx context.Context) *models.Tournament {
	return s.state.TournamentSnapshot()
}

func (s *tournamentService) CreateTournament(ctx context.Context, actor models.Principal) (*models.Tournament, error) {
	if err := authorize(OpCreateTournament, actor); err != nil {
		return nil, err
	}

	var created *models.Tournament
	err := s.state.Update(func(st *StateData) error {
		if st.Tournament != nil {
			return ErrTournamentExists
		}
		if len(st.Roster.Players) < 3 {
			return ErrNotEnoughPlayers
		}

		teams := make([]models.Team, 3)
		for i := 0; i < 3; i++ {
			kit := models.DefaultKits[i]
			teams[i] = models.Team{
				ID:      uuid.NewString(),
				Name:    kit.Name,
				Color:   kit.Hex,
				Players: []string{},
			}
		}
		st.Tournament = &models.Tournament{
			ID:        uuid.NewString(),
			CreatedAt: s.now().UTC(),
			Status:    models.TournamentStatusSetup,
			Teams:     teams,
			Matches:   []models.Match{},
		}
		created = st.Tournament.Clone()
		persistTournament(s.persister, s.tournamentRepo, st)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tournament created", slog.String("tournament_id", created.ID))
	s.broadcastTournament()
	return created, nil
}

// ResetTournament abandons the active tournament. A tournament with at
// least one finished match leaves an abandoned snapshot in history;
// anything less is discarded without trace.
func (s *tournamentService) ResetTournament(ctx context.Context, actor models.Principal) error {
	if err := authorize(OpResetTournament, actor); err != nil {
		return err
	}

	err := s.state.Update(func(st *StateData) error {
		if st.Tournament == nil {
			return ErrNoActiveTournament
		}
		// A finished tournament was archived when its last match
		// ended; re-archiving it here would downgrade that entry to
		// abandoned.
		hasFinished := len(st.Tournament.FinishedMatches()) > 0
		if hasFinished && st.Tournament.Status != models.TournamentStatusFinished {
			entry := buildHistoryEntry(st, models.TournamentStatusAbandoned, s.now().UTC())
			appendHistory(st, entry)
			s.persister.Enqueue("append_history", func(ctx context.Context) error {
				return s.historyRepo.Append(ctx, entry)
			})
		}
		st.Tournament = nil
		persistTournament(s.persister, s.tournamentRepo, st)
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.BroadcastToRoom(league.LiveRoom, league.Event{Type: league.EventTournamentCleared})
	return nil
}

func (s *tournamentService) SetTeamName(ctx context.Context, actor models.Principal, teamID, name string) error {
	if err := authorize(OpChangeTeam, actor); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrTeamNameRequired
	}
	return s.updateTeam(teamID, func(team *models.Team) error {
		team.Name = name
		return nil
	})
}

func (s *tournamentService) SetTeamColor(ctx context.Context, actor models.Principal, teamID, color string) error {
	if err := authorize(OpChangeTeam, actor); err != nil {
		return err
	}
	if !models.KnownColor(color) {
		return ErrUnknownColor
	}
	return s.updateTeam(teamID, func(team *models.Team) error {
		team.Color = color
		return nil
	})
}

func (s *tournamentService) SetTeamPreset(ctx context.Context, actor models.Principal, teamID string, presetIndex int) error {
	if err := authorize(OpChangeTeam, actor); err != nil {
		return err
	}
	if presetIndex < 0 || presetIndex >= len(models.DefaultKits) {
		return ErrUnknownPreset
	}
	kit := models.DefaultKits[presetIndex]
	return s.updateTeam(teamID, func(team *models.Team) error {
		team.Name = kit.Name
		team.Color = kit.Hex
		return nil
	})
}

func (s *tournamentService) updateTeam(teamID string, fn func(team *models.Team) error) error {
	err := s.state.Update(func(st *StateData) error {
		if st.Tournament == nil {
			return ErrNoActiveTournament
		}
		if st.Tournament.Status == models.TournamentStatusFinished {
			return ErrTournamentFinished
		}
		team := st.Tournament.FindTeam(teamID)
		if team == nil {
			return ErrTeamNotFound
		}
		if err := fn(team); err != nil {
			return err
		}
		persistTournament(s.persister, s.tournamentRepo, st)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcastTournament()
	return nil
}

// AssignPlayer puts the player on the given team, removing them from
// any other team first: membership is exclusive within a tournament.
func (s *tournamentService) AssignPlayer(ctx context.Context, actor models.Principal, playerID, teamID string) error {
	if err := authorize(OpAssignPlayer, actor); err != nil {
		return err
	}

	err := s.state.Update(func(st *StateData) error {
		if st.Tournament == nil {
			return ErrNoActiveTournament
		}
		if st.Tournament.Status != models.TournamentStatusSetup {
			return ErrTournamentNotInSetup
		}
		if st.Roster.FindPlayer(playerID) == nil {
			return ErrPlayerNotFound
		}
		target := st.Tournament.FindTeam(teamID)
		if target == nil {
			return ErrTeamNotFound
		}

		for i := range st.Tournament.Teams {
			team := &st.Tournament.Teams[i]
			kept := team.Players[:0]
			for _, pid := range team.Players {
				if pid != playerID {
					kept = append(kept, pid)
				}
			}
			team.Players = kept
		}
		target.Players = append(target.Players, playerID)

		persistTournament(s.persister, s.tournamentRepo, st)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcastTournament()
	return nil
}

func (s *tournamentService) RemovePlayerFromTeam(ctx context.Context, actor models.Principal, playerID, teamID string) error {
	if err := authorize(OpAssignPlayer, actor); err != nil {
		return err
	}

	err := s.state.Update(func(st *StateData) error {
		if st.Tournament == nil {
			return ErrNoActiveTournament
		}
		if st.Tournament.Status != models.TournamentStatusSetup {
			return ErrTournamentNotInSetup
		}
		team := st.Tournament.FindTeam(teamID)
		if team == nil {
			return ErrTeamNotFound
		}
		kept := team.Players[:0]
		for _, pid := range team.Players {
			if pid != playerID {
				kept = append(kept, pid)
			}
		}
		team.Players = kept
		persistTournament(s.persister, s.tournamentRepo, st)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcastTournament()
	return nil
}

// StartTournament moves setup → scheduling once every team has at
// least one player. The opening match is selected separately.
func (s *tournamentService) StartTournament(ctx context.Context, actor models.Principal) error {
	if err := authorize(OpStartTournament, actor); err != nil {
		return err
	}

	err := s.state.Update(func(st *StateData) error {
		if st.Tournament == nil {
			return ErrNoActiveTournament
		}
		if st.Tournament.Status != models.TournamentStatusSetup {
			return ErrTournamentNotInSetup
		}
		for _, team := range st.Tournament.Teams {
			if len(team.Players) == 0 {
				return ErrTeamsUnderstaffed
			}
		}
		st.Tournament.Status = models.TournamentStatusScheduling
		persistTournament(s.persister, s.tournamentRepo, st)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcastTournament()
	return nil
}

func (s *tournamentService) broadcastTournament() {
	s.hub.BroadcastToRoom(league.LiveRoom, league.Event{
		Type:    league.EventTournamentUpdated,
		Payload: s.state.TournamentSnapshot(),
	})
}

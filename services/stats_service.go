package services

import (
	"context"

	"github.com/alienigenasfc/pelada-system/league"
	"github.com/alienigenasfc/pelada-system/models"
)

// StatsService is the read side: standings, scorer and keeper tables
// for the active tournament, and all-time aggregates across history.
// Everything is computed on demand from the in-memory state; nothing
// here touches the store.
type StatsService interface {
	Standings(ctx context.Context) ([]models.TeamStanding, error)
	HeadToHead(ctx context.Context, teamAID, teamBID string) (models.HeadToHead, error)
	TopScorers(ctx context.Context) ([]models.ScorerStat, error)
	GoalkeeperStats(ctx context.Context) ([]models.GoalkeeperStat, error)
	History(ctx context.Context) []models.HistoryEntry
	AllTimeChampions(ctx context.Context) []models.ChampionStat
	AllTimeTopScorers(ctx context.Context) []models.ScorerStat
	AllTimeGoalkeeperStats(ctx context.Context) []models.GoalkeeperStat
	AllTimeGamesPlayed(ctx context.Context) []models.AppearanceStat
}

type statsService struct {
	state *AppState
}

func NewStatsService(state *AppState) StatsService {
	return &statsService{state: state}
}

// snapshot captures everything the calculators need in one locked read.
// Name resolution afterwards runs lock-free against the captured roster.
func (s *statsService) snapshot() (*models.Tournament, []models.HistoryEntry, league.NameResolver) {
	var (
		tournament *models.Tournament
		history    []models.HistoryEntry
		roster     *models.Roster
	)
	s.state.View(func(st StateData) {
		if st.Tournament != nil {
			tournament = st.Tournament.Clone()
		}
		history = append([]models.HistoryEntry(nil), st.History...)
		roster = &models.Roster{Players: append([]models.Player(nil), st.Roster.Players...)}
	})
	return tournament, history, roster.PlayerName
}

func (s *statsService) Standings(ctx context.Context) ([]models.TeamStanding, error) {
	tournament, _, _ := s.snapshot()
	if tournament == nil {
		return nil, ErrNoActiveTournament
	}
	return league.Standings(tournament), nil
}

func (s *statsService) HeadToHead(ctx context.Context, teamAID, teamBID string) (models.HeadToHead, error) {
	tournament, _, _ := s.snapshot()
	if tournament == nil {
		return models.HeadToHead{}, ErrNoActiveTournament
	}
	if tournament.FindTeam(teamAID) == nil || tournament.FindTeam(teamBID) == nil {
		return models.HeadToHead{}, ErrTeamNotFound
	}
	return league.HeadToHead(tournament, teamAID, teamBID), nil
}

func (s *statsService) TopScorers(ctx context.Context) ([]models.ScorerStat, error) {
	tournament, _, nameOf := s.snapshot()
	if tournament == nil {
		return nil, ErrNoActiveTournament
	}
	return league.TopScorers(tournament, nameOf), nil
}

func (s *statsService) GoalkeeperStats(ctx context.Context) ([]models.GoalkeeperStat, error) {
	tournament, _, nameOf := s.snapshot()
	if tournament == nil {
		return nil, ErrNoActiveTournament
	}
	return league.GoalkeeperStats(tournament, nameOf), nil
}

func (s *statsService) History(ctx context.Context) []models.HistoryEntry {
	return s.state.HistorySnapshot()
}

func (s *statsService) AllTimeChampions(ctx context.Context) []models.ChampionStat {
	_, history, nameOf := s.snapshot()
	return league.AllTimeChampions(history, nameOf)
}

func (s *statsService) AllTimeTopScorers(ctx context.Context) []models.ScorerStat {
	tournament, history, nameOf := s.snapshot()
	return league.AllTimeTopScorers(history, tournament, nameOf)
}

func (s *statsService) AllTimeGoalkeeperStats(ctx context.Context) []models.GoalkeeperStat {
	tournament, history, nameOf := s.snapshot()
	return league.AllTimeGoalkeeperStats(history, tournament, nameOf)
}

func (s *statsService) AllTimeGamesPlayed(ctx context.Context) []models.AppearanceStat {
	tournament, history, nameOf := s.snapshot()
	return league.AllTimeGamesPlayed(history, tournament, nameOf)
}

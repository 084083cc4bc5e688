package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alienigenasfc/pelada-system/league"
	"github.com/alienigenasfc/pelada-system/models"
	"github.com/alienigenasfc/pelada-system/repositories"
)

// MatchService is the live-match state machine: round-1 selection, goal
// recording, goalkeeper assignment, finalization and the winner-stays
// schedule resolution. Only one match is in progress tournament-wide;
// that invariant is enforced here, not by the store.
type MatchService interface {
	SelectRoundOneTeams(ctx context.Context, actor models.Principal, homeTeamID, awayTeamID string) error
	AddGoal(ctx context.Context, actor models.Principal, teamID, playerID string) error
	RemoveGoal(ctx context.Context, actor models.Principal, matchIndex, goalIndex int) error
	SetGoalkeepers(ctx context.Context, actor models.Principal, matchIndex int, homeKeeperID, awayKeeperID string) error
	// EndMatch finalizes the in-progress match. When round 1 ends in a
	// draw it returns ErrStayChoiceRequired and the caller must follow
	// up with ChooseStayTeam; the match itself is already finished.
	EndMatch(ctx context.Context, actor models.Principal, matchIndex int) error
	ChooseStayTeam(ctx context.Context, actor models.Principal, stayTeamID string) error
}

type matchService struct {
	state          *AppState
	tournamentRepo repositories.TournamentRepository
	historyRepo    repositories.HistoryRepository
	persister      Persister
	hub            Broadcaster
	generator      *league.WinnerStaysGenerator
	logger         *slog.Logger
	now            func() time.Time
}

func NewMatchService(
	state *AppState,
	tournamentRepo repositories.TournamentRepository,
	historyRepo repositories.HistoryRepository,
	persister Persister,
	hub Broadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		state:          state,
		tournamentRepo: tournamentRepo,
		historyRepo:    historyRepo,
		persister:      persister,
		hub:            hub,
		generator:      league.NewWinnerStaysGenerator(),
		logger:         logger,
		now:            time.Now,
	}
}

// SelectRoundOneTeams records the manual choice of the two teams that
// open the tournament. The third team rests; rounds 2..9 do not exist
// until round 1 is resolved.
func (s *matchService) SelectRoundOneTeams(ctx context.Context, actor models.Principal, homeTeamID, awayTeamID string) error {
	if err := authorize(OpSelectRoundOne, actor); err != nil {
		return err
	}

	err := s.state.Update(func(st *StateData) error {
		t := st.Tournament
		if t == nil {
			return ErrNoActiveTournament
		}
		switch {
		case t.Status == models.TournamentStatusScheduling:
		case t.Status == models.TournamentStatusSetup:
			return ErrTournamentNotStarted
		case t.Status == models.TournamentStatusFinished:
			return ErrTournamentFinished
		default:
			return ErrRoundOneAlreadyPicked
		}
		opening, err := s.generator.RoundOne(t.Teams, homeTeamID, awayTeamID)
		if err != nil {
			return err
		}
		t.Match1Selection = models.MatchSelection{Home: homeTeamID, Away: awayTeamID}
		t.Matches = []models.Match{opening}
		t.Status = models.TournamentStatusInProgress
		persistTournament(s.persister, s.tournamentRepo, st)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcastTournament()
	return nil
}

// AddGoal appends a goal to the in-progress match and bumps the side's
// score, keeping score and goal log in sync. The scorer must be on the
// scoring team's current roster. There is no goal limit.
func (s *matchService) AddGoal(ctx context.Context, actor models.Principal, teamID, playerID string) error {
	if err := authorize(OpRecordGoal, actor); err != nil {
		return err
	}

	err := s.state.Update(func(st *StateData) error {
		t := st.Tournament
		if t == nil {
			return ErrNoActiveTournament
		}
		idx := t.CurrentMatchIndex()
		if idx < 0 {
			return ErrMatchNotFound
		}
		match := &t.Matches[idx]
		if match.Status != models.MatchStatusInProgress {
			return ErrMatchNotInProgress
		}
		if !match.HasTeam(teamID) {
			return ErrTeamNotFound
		}
		team := t.FindTeam(teamID)
		if team == nil {
			return ErrTeamNotFound
		}
		if !team.HasPlayer(playerID) {
			return fmt.Errorf("%w: player %s", ErrScorerNotOnTeam, playerID)
		}

		match.Goals = append(match.Goals, models.Goal{TeamID: teamID, PlayerID: playerID})
		if teamID == match.HomeTeamID {
			match.HomeScore++
		} else {
			match.AwayScore++
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

// RemoveGoal deletes one entry from the goal log and decrements the
// matching score, floored at zero.
func (s *matchService) RemoveGoal(ctx context.Context, actor models.Principal, matchIndex, goalIndex int) error {
	if err := authorize(OpRemoveGoal, actor); err != nil {
		return err
	}

	err := s.state.Update(func(st *StateData) error {
		t := st.Tournament
		if t == nil {
			return ErrNoActiveTournament
		}
		if matchIndex < 0 || matchIndex >= len(t.Matches) {
			return ErrMatchNotFound
		}
		match := &t.Matches[matchIndex]
		if match.Status == models.MatchStatusFinished {
			// Touching finished results is a separate, admin-only
			// capability.
			if err := authorize(OpEditFinishedMatch, actor); err != nil {
				return err
			}
		}
		if goalIndex < 0 || goalIndex >= len(match.Goals) {
			return ErrGoalNotFound
		}

		goal := match.Goals[goalIndex]
		if goal.TeamID == match.HomeTeamID {
			if match.HomeScore > 0 {
				match.HomeScore--
			}
		} else {
			if match.AwayScore > 0 {
				match.AwayScore--
			}
		}
		match.Goals = append(match.Goals[:goalIndex], match.Goals[goalIndex+1:]...)
		persistTournament(s.persister, s.tournamentRepo, st)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcastTournament()
	return nil
}

// SetGoalkeepers assigns both keepers for a match. Keepers come from
// the full roster, not just the playing teams: goalkeeping is a
// cross-team role in this variant. Changeable until finalization.
func (s *matchService) SetGoalkeepers(ctx context.Context, actor models.Principal, matchIndex int, homeKeeperID, awayKeeperID string) error {
	if err := authorize(OpSetGoalkeeper, actor); err != nil {
		return err
	}
	if homeKeeperID == "" || awayKeeperID == "" {
		return ErrGoalkeepersRequired
	}

	err := s.state.Update(func(st *StateData) error {
		t := st.Tournament
		if t == nil {
			return ErrNoActiveTournament
		}
		if matchIndex < 0 || matchIndex >= len(t.Matches) {
			return ErrMatchNotFound
		}
		match := &t.Matches[matchIndex]
		if match.Status == models.MatchStatusFinished {
			return ErrMatchAlreadyFinished
		}
		if st.Roster.FindPlayer(homeKeeperID) == nil || st.Roster.FindPlayer(awayKeeperID) == nil {
			return ErrPlayerNotFound
		}
		match.HomeGoalkeeper = homeKeeperID
		match.AwayGoalkeeper = awayKeeperID
		persistTournament(s.persister, s.tournamentRepo, st)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcastTournament()
	return nil
}

func (s *matchService) EndMatch(ctx context.Context, actor models.Principal, matchIndex int) error {
	if err := authorize(OpFinalizeMatch, actor); err != nil {
		return err
	}

	var crowned *models.Champion
	var stayPending bool
	err := s.state.Update(func(st *StateData) error {
		t := st.Tournament
		if t == nil {
			return ErrNoActiveTournament
		}
		if matchIndex < 0 || matchIndex >= len(t.Matches) {
			return ErrMatchNotFound
		}
		match := &t.Matches[matchIndex]
		if match.Status != models.MatchStatusInProgress {
			return ErrMatchNotInProgress
		}
		if match.HomeGoalkeeper == "" || match.AwayGoalkeeper == "" {
			return ErrGoalkeepersRequired
		}

		match.Status = models.MatchStatusFinished

		// Round 1 drives the rotation exactly once.
		if matchIndex == 0 && !t.ScheduleGenerated {
			winner := match.WinnerTeamID()
			if winner == "" {
				// Draw: the schedule waits for the stay choice. The
				// finished round-1 match with no rounds 2..9 is a
				// legal transient state.
				stayPending = true
				persistTournament(s.persister, s.tournamentRepo, st)
				return nil
			}
			if err := s.resolveRoundOne(st, winner); err != nil {
				return err
			}
			persistTournament(s.persister, s.tournamentRepo, st)
			return nil
		}

		if t.AllMatchesFinished() {
			crowned = s.finishTournament(st)
			persistTournament(s.persister, s.tournamentRepo, st)
			return nil
		}

		startNextPending(t)
		persistTournament(s.persister, s.tournamentRepo, st)
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcastTournament()
	if crowned != nil {
		s.hub.BroadcastToRoom(league.LiveRoom, league.Event{
			Type:    league.EventChampionCrowned,
			Payload: crowned,
		})
	}
	if stayPending {
		return ErrStayChoiceRequired
	}
	return nil
}

// ChooseStayTeam resolves a drawn round 1: the chosen team stays on the
// pitch and the schedule is generated around it.
func (s *matchService) ChooseStayTeam(ctx context.Context, actor models.Principal, stayTeamID string) error {
	if err := authorize(OpChooseStayTeam, actor); err != nil {
		return err
	}

	err := s.state.Update(func(st *StateData) error {
		t := st.Tournament
		if t == nil {
			return ErrNoActiveTournament
		}
		if t.ScheduleGenerated || len(t.Matches) != 1 || t.Matches[0].Status != models.MatchStatusFinished {
			return ErrStayChoiceNotPending
		}
		if err := s.resolveRoundOne(st, stayTeamID); err != nil {
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

// resolveRoundOne generates the full 9-round schedule from the round-1
// outcome. Caller holds the state lock.
func (s *matchService) resolveRoundOne(st *StateData, stayTeamID string) error {
	t := st.Tournament
	if t.ScheduleGenerated {
		return ErrScheduleAlreadyBuilt
	}
	matches, rotation, err := s.generator.Generate(t.Teams, t.Matches[0], stayTeamID)
	if err != nil {
		return err
	}
	t.Matches = matches
	t.StayTeam = rotation.Stay
	t.LeavingTeam = rotation.Leaving
	t.RestingTeam = rotation.Resting
	t.ScheduleGenerated = true

	s.logger.Info("schedule generated",
		slog.String("tournament_id", t.ID),
		slog.String("stay", rotation.Stay),
		slog.String("leaving", rotation.Leaving),
		slog.String("resting", rotation.Resting))
	return nil
}

// finishTournament archives the completed tournament and returns the
// champion. Caller holds the state lock.
func (s *matchService) finishTournament(st *StateData) *models.Champion {
	t := st.Tournament
	t.Status = models.TournamentStatusFinished

	entry := buildHistoryEntry(st, models.TournamentStatusFinished, s.now().UTC())
	appendHistory(st, entry)
	s.persister.Enqueue("append_history", func(ctx context.Context) error {
		return s.historyRepo.Append(ctx, entry)
	})

	s.logger.Info("tournament finished", slog.String("tournament_id", t.ID))
	return entry.Champion
}

func startNextPending(t *models.Tournament) {
	for i := range t.Matches {
		if t.Matches[i].Status == models.MatchStatusPending {
			t.Matches[i].Status = models.MatchStatusInProgress
			return
		}
	}
}

func (s *matchService) broadcastTournament() {
	s.hub.BroadcastToRoom(league.LiveRoom, league.Event{
		Type:    league.EventTournamentUpdated,
		Payload: s.state.TournamentSnapshot(),
	})
}

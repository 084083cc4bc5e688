package services

import "errors"

// Shared errors used across services and the HTTP mapping.
var (
	// Resource lookups.
	ErrNotFound           = errors.New("requested resource not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrGoalNotFound       = errors.New("goal not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoActiveTournament = errors.New("no active tournament")

	// Validation and business rules.
	ErrValidationFailed      = errors.New("validation failed")
	ErrPlayerNameRequired    = errors.New("player name is required")
	ErrPlayerNameConflict    = errors.New("player with this name already exists")
	ErrPlayerInTournament    = errors.New("player is assigned to the active tournament")
	ErrNotEnoughPlayers      = errors.New("at least 3 registered players are required")
	ErrTeamsUnderstaffed     = errors.New("every team needs at least one player")
	ErrTournamentExists      = errors.New("a tournament is already active")
	ErrTournamentNotInSetup  = errors.New("tournament is past the setup phase")
	ErrTournamentNotStarted  = errors.New("tournament has not started")
	ErrTournamentFinished    = errors.New("tournament is already finished")
	ErrMatchNotInProgress    = errors.New("match is not in progress")
	ErrMatchAlreadyFinished  = errors.New("match is already finished")
	ErrScorerNotOnTeam       = errors.New("scorer is not on the scoring team")
	ErrGoalkeepersRequired   = errors.New("both goalkeepers must be set before ending the match")
	ErrStayChoiceRequired    = errors.New("round 1 ended in a draw: choose the team that stays")
	ErrStayChoiceNotPending  = errors.New("no stay choice is pending")
	ErrScheduleAlreadyBuilt  = errors.New("schedule has already been generated")
	ErrRoundOneAlreadyPicked = errors.New("round 1 teams have already been selected")
	ErrUnknownColor          = errors.New("color is not in the palette")
	ErrTeamNameRequired      = errors.New("team name is required")
	ErrUnknownPreset         = errors.New("unknown team preset")

	// Identity.
	ErrPermissionDenied   = errors.New("operation not allowed for the current role")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrEmailConflict      = errors.New("email address is already in use")
	ErrInvalidRole        = errors.New("invalid role")
	ErrLastAdmin          = errors.New("cannot remove or demote the last admin")
)

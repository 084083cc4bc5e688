package services

import "github.com/alienigenasfc/pelada-system/models"

// Operation names every mutating action gated by the role policy.
type Operation string

const (
	OpManageRoster      Operation = "manage_roster"
	OpCreateTournament  Operation = "create_tournament"
	OpResetTournament   Operation = "reset_tournament"
	OpChangeTeam        Operation = "change_team"
	OpAssignPlayer      Operation = "assign_player"
	OpStartTournament   Operation = "start_tournament"
	OpSelectRoundOne    Operation = "select_round_one"
	OpChooseStayTeam    Operation = "choose_stay_team"
	OpRecordGoal        Operation = "record_goal"
	OpRemoveGoal        Operation = "remove_goal"
	OpEditFinishedMatch Operation = "edit_finished_match"
	OpSetGoalkeeper     Operation = "set_goalkeeper"
	OpFinalizeMatch     Operation = "finalize_match"
	OpManageUsers       Operation = "manage_users"
)

// policy is the single table consulted before every mutation. Kept in
// one place on purpose: permission rules must not be scattered through
// the services.
var policy = map[Operation][]models.Role{
	OpManageRoster:      {models.RoleAdmin},
	OpCreateTournament:  {models.RoleAdmin, models.RoleCaptain},
	OpResetTournament:   {models.RoleAdmin, models.RoleCaptain},
	OpChangeTeam:        {models.RoleAdmin},
	OpAssignPlayer:      {models.RoleAdmin, models.RoleCaptain},
	OpStartTournament:   {models.RoleAdmin, models.RoleCaptain},
	OpSelectRoundOne:    {models.RoleAdmin, models.RoleCaptain},
	OpChooseStayTeam:    {models.RoleAdmin, models.RoleCaptain},
	OpRecordGoal:        {models.RoleAdmin, models.RoleCaptain},
	OpRemoveGoal:        {models.RoleAdmin, models.RoleCaptain},
	OpEditFinishedMatch: {models.RoleAdmin},
	OpSetGoalkeeper:     {models.RoleAdmin, models.RoleCaptain},
	OpFinalizeMatch:     {models.RoleAdmin, models.RoleCaptain},
	OpManageUsers:       {models.RoleAdmin},
}

// Allowed reports whether the role may perform the operation.
func Allowed(op Operation, role models.Role) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}

// authorize is the capability predicate every mutating service method
// calls first. Rejections leave state untouched.
func authorize(op Operation, actor models.Principal) error {
	if !Allowed(op, actor.Role) {
		return ErrPermissionDenied
	}
	return nil
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alienigenasfc/pelada-system/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func matchIndexParam(r *http.Request) (int, error) {
	idx, err := strconv.Atoi(chi.URLParam(r, "matchIndex"))
	if err != nil {
		return 0, errors.New("match index must be an integer")
	}
	return idx, nil
}

func (h *MatchHandler) SelectRoundOne(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		HomeTeamID string `json:"home_team_id"`
		AwayTeamID string `json:"away_team_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.SelectRoundOneTeams(r.Context(), actor, input.HomeTeamID, input.AwayTeamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "round 1 teams selected"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) AddGoal(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		TeamID   string `json:"team_id"`
		PlayerID string `json:"player_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.AddGoal(r.Context(), actor, input.TeamID, input.PlayerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"message": "goal recorded"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) RemoveGoal(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	matchIndex, err := matchIndexParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	goalIndex, err := strconv.Atoi(chi.URLParam(r, "goalIndex"))
	if err != nil {
		badRequestResponse(w, r, errors.New("goal index must be an integer"))
		return
	}

	if err := h.matchService.RemoveGoal(r.Context(), actor, matchIndex, goalIndex); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandler) SetGoalkeepers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	matchIndex, err := matchIndexParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		HomeGoalkeeperID string `json:"home_goalkeeper_id"`
		AwayGoalkeeperID string `json:"away_goalkeeper_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.SetGoalkeepers(r.Context(), actor, matchIndex, input.HomeGoalkeeperID, input.AwayGoalkeeperID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "goalkeepers set"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) End(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	matchIndex, err := matchIndexParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err = h.matchService.EndMatch(r.Context(), actor, matchIndex)
	if errors.Is(err, services.ErrStayChoiceRequired) {
		// The match is finished; the caller must now pick who stays.
		response := jsonResponse{
			"message":              "match ended in a draw",
			"stay_choice_required": true,
		}
		if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "match finished"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ChooseStay(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		StayTeamID string `json:"stay_team_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.ChooseStayTeam(r.Context(), actor, input.StayTeamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "schedule generated"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

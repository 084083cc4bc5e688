package handlers

import (
	"errors"
	"net/http"

	"github.com/alienigenasfc/pelada-system/services"
	"github.com/go-chi/chi/v5"
)

var errMissingTeamFields = errors.New("name, color or preset is required")

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

// Get returns the active tournament, or null when the slot is empty.
// The empty slot is not an error: the frontend shows the setup screen.
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	tournament := h.tournamentService.GetTournament(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := h.tournamentService.ResetTournament(r.Context(), actor); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TournamentHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		Name   *string `json:"name"`
		Color  *string `json:"color"`
		Preset *int    `json:"preset"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teamID := chi.URLParam(r, "teamID")
	var err error
	switch {
	case input.Preset != nil:
		err = h.tournamentService.SetTeamPreset(r.Context(), actor, teamID, *input.Preset)
	case input.Name != nil && input.Color != nil:
		if err = h.tournamentService.SetTeamName(r.Context(), actor, teamID, *input.Name); err == nil {
			err = h.tournamentService.SetTeamColor(r.Context(), actor, teamID, *input.Color)
		}
	case input.Name != nil:
		err = h.tournamentService.SetTeamName(r.Context(), actor, teamID, *input.Name)
	case input.Color != nil:
		err = h.tournamentService.SetTeamColor(r.Context(), actor, teamID, *input.Color)
	default:
		badRequestResponse(w, r, errMissingTeamFields)
		return
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "team updated"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) AssignPlayer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		PlayerID string `json:"player_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teamID := chi.URLParam(r, "teamID")
	if err := h.tournamentService.AssignPlayer(r.Context(), actor, input.PlayerID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "player assigned"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	teamID := chi.URLParam(r, "teamID")
	playerID := chi.URLParam(r, "playerID")
	if err := h.tournamentService.RemovePlayerFromTeam(r.Context(), actor, playerID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TournamentHandler) Start(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := h.tournamentService.StartTournament(r.Context(), actor); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "tournament started"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/alienigenasfc/pelada-system/services"
	"github.com/go-chi/chi/v5"
)

type PlayerHandler struct {
	rosterService services.RosterService
}

func NewPlayerHandler(rosterService services.RosterService) *PlayerHandler {
	return &PlayerHandler{rosterService: rosterService}
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players := h.rosterService.ListPlayers(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.rosterService.AddPlayer(r.Context(), actor, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	playerID := chi.URLParam(r, "playerID")
	if err := h.rosterService.RemovePlayer(r.Context(), actor, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

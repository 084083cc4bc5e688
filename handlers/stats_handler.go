package handlers

import (
	"net/http"

	"github.com/alienigenasfc/pelada-system/services"
	"github.com/go-chi/chi/v5"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.statsService.Standings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) HeadToHead(w http.ResponseWriter, r *http.Request) {
	teamAID := chi.URLParam(r, "teamAID")
	teamBID := chi.URLParam(r, "teamBID")

	h2h, err := h.statsService.HeadToHead(r.Context(), teamAID, teamBID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"head_to_head": h2h}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) TopScorers(w http.ResponseWriter, r *http.Request) {
	scorers, err := h.statsService.TopScorers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"scorers": scorers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) Goalkeepers(w http.ResponseWriter, r *http.Request) {
	keepers, err := h.statsService.GoalkeeperStats(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"goalkeepers": keepers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	history := h.statsService.History(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"history": history}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) AllTimeChampions(w http.ResponseWriter, r *http.Request) {
	champions := h.statsService.AllTimeChampions(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"champions": champions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) AllTimeTopScorers(w http.ResponseWriter, r *http.Request) {
	scorers := h.statsService.AllTimeTopScorers(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"scorers": scorers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) AllTimeGoalkeepers(w http.ResponseWriter, r *http.Request) {
	keepers := h.statsService.AllTimeGoalkeeperStats(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"goalkeepers": keepers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) AllTimeGamesPlayed(w http.ResponseWriter, r *http.Request) {
	appearances := h.statsService.AllTimeGamesPlayed(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"appearances": appearances}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

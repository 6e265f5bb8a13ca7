package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hausmate/hausmate/internal/middleware"
)

func (h *Handler) createHousehold(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	household, err := h.households.Create(r.Context(), middleware.GetUserID(r.Context()), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, householdResponse(*household))
}

func (h *Handler) joinHousehold(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HouseholdID string `json:"household_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	household, err := h.households.Join(r.Context(), middleware.GetUserID(r.Context()), req.HouseholdID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, householdResponse(*household))
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "household_id")

	members, err := h.households.Members(r.Context(), middleware.GetUserID(r.Context()), householdID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]memberResponse, len(members))
	for i, m := range members {
		resp[i] = memberResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) householdSummary(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "household_id")

	summary, err := h.expenses.Summary(r.Context(), middleware.GetUserID(r.Context()), householdID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

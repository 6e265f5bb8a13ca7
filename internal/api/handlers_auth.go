package api

import (
	"encoding/json"
	"net/http"

	"github.com/hausmate/hausmate/internal/service"
)

// Handler exposes the HTTP surface over the service layer.
type Handler struct {
	auth       *service.AuthService
	households *service.HouseholdService
	expenses   *service.ExpenseService
}

// NewHandler wires the services into a request handler.
func NewHandler(auth *service.AuthService, households *service.HouseholdService, expenses *service.ExpenseService) *Handler {
	return &Handler{
		auth:       auth,
		households: households,
		expenses:   expenses,
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	session, err := h.auth.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse(*session))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(*session))
}

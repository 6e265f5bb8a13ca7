package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hausmate/hausmate/internal/auth"
	"github.com/hausmate/hausmate/internal/service"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
	// ComputedSum and ExpectedSum are set for split sum mismatches.
	ComputedSum string `json:"computed_sum,omitempty"`
	ExpectedSum string `json:"expected_sum,omitempty"`
	// MissingSplitIDs is set when a settle request names unknown splits.
	MissingSplitIDs []string `json:"missing_split_ids,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps a service error onto an HTTP status and JSON body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		mismatch *service.SumMismatchError
		missing  *service.MissingSplitsError
		invalid  *service.InvalidInputError
	)

	switch {
	case errors.As(err, &mismatch):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:       mismatch.Error(),
			ComputedSum: mismatch.Computed.StringFixed(2),
			ExpectedSum: mismatch.Expected.StringFixed(2),
		})
	case errors.As(err, &missing):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:           missing.Error(),
			MissingSplitIDs: missing.SplitIDs,
		})
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: invalid.Error()})
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

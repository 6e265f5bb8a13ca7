package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/hausmate/hausmate/internal/middleware"
	"github.com/hausmate/hausmate/internal/models"
)

type syncRecordRequest struct {
	ID            string                 `json:"id"`
	HouseholdID   string                 `json:"household_id"`
	Amount        decimal.Decimal        `json:"amount"`
	Description   string                 `json:"description"`
	Category      models.ExpenseCategory `json:"category"`
	PaymentMethod models.PaymentMethod   `json:"payment_method"`
	Date          int64                  `json:"date"`
	SplitType     models.SplitType       `json:"split_type"`
	IsPersonal    bool                   `json:"is_personal"`
	CreatedAt     int64                  `json:"created_at"`
	UpdatedAt     int64                  `json:"updated_at"`
}

type syncResultResponse struct {
	ExpenseID string `json:"expense_id"`
	Action    string `json:"action"`
}

func (h *Handler) syncExpenses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Expenses []syncRecordRequest `json:"expenses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	records := make([]*models.Expense, len(req.Expenses))
	for i, rec := range req.Expenses {
		records[i] = &models.Expense{
			ID:            rec.ID,
			HouseholdID:   rec.HouseholdID,
			Amount:        rec.Amount,
			Description:   rec.Description,
			Category:      rec.Category,
			PaymentMethod: rec.PaymentMethod,
			Date:          rec.Date,
			SplitType:     rec.SplitType,
			IsPersonal:    rec.IsPersonal,
			CreatedAt:     rec.CreatedAt,
			UpdatedAt:     rec.UpdatedAt,
		}
	}

	results, err := h.expenses.SyncExpenses(r.Context(), middleware.GetUserID(r.Context()), records)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]syncResultResponse, len(results))
	for i, res := range results {
		resp[i] = syncResultResponse{ExpenseID: res.ExpenseID, Action: string(res.Action)}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": resp})
}

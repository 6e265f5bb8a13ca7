package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/hausmate/hausmate/internal/calculator"
	"github.com/hausmate/hausmate/internal/middleware"
	"github.com/hausmate/hausmate/internal/models"
	"github.com/hausmate/hausmate/internal/service"
	"github.com/hausmate/hausmate/internal/storage"
)

type splitRequest struct {
	UserID     string          `json:"user_id"`
	AmountOwed decimal.Decimal `json:"amount_owed"`
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HouseholdID   string                 `json:"household_id"`
		Amount        decimal.Decimal        `json:"amount"`
		Description   string                 `json:"description"`
		Category      models.ExpenseCategory `json:"category"`
		PaymentMethod models.PaymentMethod   `json:"payment_method"`
		Date          int64                  `json:"date"`
		SplitType     models.SplitType       `json:"split_type"`
		IsPersonal    bool                   `json:"is_personal"`
		Splits        []splitRequest         `json:"splits"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	input := service.CreateExpenseInput{
		HouseholdID:   req.HouseholdID,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Date:          req.Date,
		SplitType:     req.SplitType,
		IsPersonal:    req.IsPersonal,
	}
	for _, sp := range req.Splits {
		input.Splits = append(input.Splits, calculator.SplitInput(sp))
	}

	detail, err := h.expenses.Create(r.Context(), middleware.GetUserID(r.Context()), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseDetailResponse(detail))
}

func (h *Handler) getExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expense_id")

	detail, err := h.expenses.Get(r.Context(), middleware.GetUserID(r.Context()), expenseID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseDetailResponse(detail))
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.ExpenseFilter{
		HouseholdID: q.Get("household_id"),
		Category:    models.ExpenseCategory(q.Get("category")),
	}
	if filter.HouseholdID == "" {
		badRequest(w, "household_id query parameter is required")
		return
	}
	if v := q.Get("start_date"); v != "" {
		ts, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequest(w, "start_date must be a Unix timestamp")
			return
		}
		filter.StartDate = ts
	}
	if v := q.Get("end_date"); v != "" {
		ts, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequest(w, "end_date must be a Unix timestamp")
			return
		}
		filter.EndDate = ts
	}

	expenses, err := h.expenses.List(r.Context(), middleware.GetUserID(r.Context()), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expense_id")

	var req struct {
		Amount        *decimal.Decimal        `json:"amount"`
		Description   *string                 `json:"description"`
		Category      *models.ExpenseCategory `json:"category"`
		PaymentMethod *models.PaymentMethod   `json:"payment_method"`
		Date          *int64                  `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	expense, err := h.expenses.Update(r.Context(), middleware.GetUserID(r.Context()), expenseID, service.UpdateExpenseInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expense_id")

	if err := h.expenses.Delete(r.Context(), middleware.GetUserID(r.Context()), expenseID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

func (h *Handler) settleSplits(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expense_id")

	var req struct {
		SplitIDs []string `json:"split_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	result, err := h.expenses.Settle(r.Context(), middleware.GetUserID(r.Context()), expenseID, req.SplitIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, settlementResponse{
		Message:      result.Message,
		SettledCount: result.SettledCount,
		SplitIDs:     result.SplitIDs,
	})
}

func (h *Handler) userAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	q := r.URL.Query()

	householdID := q.Get("household_id")
	if householdID == "" {
		badRequest(w, "household_id query parameter is required")
		return
	}

	months := 0
	if v := q.Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(w, "months must be an integer")
			return
		}
		months = n
	}

	analytics, err := h.expenses.Analytics(r.Context(), middleware.GetUserID(r.Context()), userID, householdID, months)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAnalyticsResponse(analytics))
}

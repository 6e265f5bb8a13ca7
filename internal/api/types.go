package api

import (
	"github.com/shopspring/decimal"

	"github.com/hausmate/hausmate/internal/calculator"
	"github.com/hausmate/hausmate/internal/models"
	"github.com/hausmate/hausmate/internal/service"
)

type splitResponse struct {
	ID         string          `json:"id"`
	ExpenseID  string          `json:"expense_id"`
	UserID     string          `json:"user_id"`
	UserName   string          `json:"user_name"`
	UserEmail  string          `json:"user_email"`
	AmountOwed decimal.Decimal `json:"amount_owed"`
	IsSettled  bool            `json:"is_settled"`
	SettledAt  int64           `json:"settled_at,omitempty"`
	CreatedAt  int64           `json:"created_at"`
}

type expenseResponse struct {
	ID            string                 `json:"id"`
	HouseholdID   string                 `json:"household_id"`
	CreatedBy     string                 `json:"created_by"`
	CreatorName   string                 `json:"creator_name,omitempty"`
	Amount        decimal.Decimal        `json:"amount"`
	Description   string                 `json:"description"`
	Category      models.ExpenseCategory `json:"category"`
	PaymentMethod models.PaymentMethod   `json:"payment_method"`
	Date          int64                  `json:"date"`
	SplitType     models.SplitType       `json:"split_type"`
	IsPersonal    bool                   `json:"is_personal"`
	CreatedAt     int64                  `json:"created_at"`
	UpdatedAt     int64                  `json:"updated_at"`
	Splits        []splitResponse        `json:"splits,omitempty"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:            e.ID,
		HouseholdID:   e.HouseholdID,
		CreatedBy:     e.CreatedBy,
		Amount:        e.Amount,
		Description:   e.Description,
		Category:      e.Category,
		PaymentMethod: e.PaymentMethod,
		Date:          e.Date,
		SplitType:     e.SplitType,
		IsPersonal:    e.IsPersonal,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toExpenseDetailResponse(d *service.ExpenseDetail) expenseResponse {
	resp := toExpenseResponse(d.Expense)
	resp.CreatorName = d.CreatorName
	resp.Splits = make([]splitResponse, len(d.Splits))
	for i, sp := range d.Splits {
		resp.Splits[i] = splitResponse{
			ID:         sp.ID,
			ExpenseID:  sp.ExpenseID,
			UserID:     sp.UserID,
			UserName:   sp.UserName,
			UserEmail:  sp.UserEmail,
			AmountOwed: sp.AmountOwed,
			IsSettled:  sp.IsSettled,
			SettledAt:  sp.SettledAt,
			CreatedAt:  sp.CreatedAt,
		}
	}
	return resp
}

type settlementResponse struct {
	Message      string   `json:"message"`
	SettledCount int      `json:"settled_count"`
	SplitIDs     []string `json:"split_ids"`
}

type memberBalanceResponse struct {
	UserID    string          `json:"user_id"`
	UserName  string          `json:"user_name"`
	UserEmail string          `json:"user_email"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	TotalOwed decimal.Decimal `json:"total_owed"`
	Balance   decimal.Decimal `json:"balance"`
}

type summaryResponse struct {
	HouseholdID   string                  `json:"household_id"`
	TotalExpenses decimal.Decimal         `json:"total_expenses"`
	TotalSettled  decimal.Decimal         `json:"total_settled"`
	TotalPending  decimal.Decimal         `json:"total_pending"`
	ExpenseCount  int                     `json:"expense_count"`
	UserBalances  []memberBalanceResponse `json:"user_balances"`
}

func toSummaryResponse(s *calculator.HouseholdSummary) summaryResponse {
	resp := summaryResponse{
		HouseholdID:   s.HouseholdID,
		TotalExpenses: s.TotalExpenses,
		TotalSettled:  s.TotalSettled,
		TotalPending:  s.TotalPending,
		ExpenseCount:  s.ExpenseCount,
		UserBalances:  make([]memberBalanceResponse, len(s.UserBalances)),
	}
	for i, b := range s.UserBalances {
		resp.UserBalances[i] = memberBalanceResponse{
			UserID:    b.UserID,
			UserName:  b.UserName,
			UserEmail: b.UserEmail,
			TotalPaid: b.TotalPaid,
			TotalOwed: b.TotalOwed,
			Balance:   b.Balance,
		}
	}
	return resp
}

type monthlyStatsResponse struct {
	Year              int                                        `json:"year"`
	Month             int                                        `json:"month"`
	TotalAmount       decimal.Decimal                            `json:"total_amount"`
	ExpenseCount      int                                        `json:"expense_count"`
	AverageExpense    decimal.Decimal                            `json:"average_expense"`
	CategoryBreakdown map[models.ExpenseCategory]decimal.Decimal `json:"category_breakdown"`
}

type analyticsResponse struct {
	UserID             string                 `json:"user_id"`
	HouseholdID        string                 `json:"household_id"`
	PeriodStart        int64                  `json:"period_start"`
	PeriodEnd          int64                  `json:"period_end"`
	TotalSpent         decimal.Decimal        `json:"total_spent"`
	TotalPaidForOthers decimal.Decimal        `json:"total_paid_for_others"`
	TotalOwedByUser    decimal.Decimal        `json:"total_owed_by_user"`
	NetBalance         decimal.Decimal        `json:"net_balance"`
	ExpenseCount       int                    `json:"expense_count"`
	MonthlyStats       []monthlyStatsResponse `json:"monthly_stats"`
}

func toAnalyticsResponse(a *calculator.PersonalAnalytics) analyticsResponse {
	resp := analyticsResponse{
		UserID:             a.UserID,
		HouseholdID:        a.HouseholdID,
		PeriodStart:        a.PeriodStart,
		PeriodEnd:          a.PeriodEnd,
		TotalSpent:         a.TotalSpent,
		TotalPaidForOthers: a.TotalPaidForOthers,
		TotalOwedByUser:    a.TotalOwedByUser,
		NetBalance:         a.NetBalance,
		ExpenseCount:       a.ExpenseCount,
		MonthlyStats:       make([]monthlyStatsResponse, len(a.MonthlyStats)),
	}
	for i, m := range a.MonthlyStats {
		resp.MonthlyStats[i] = monthlyStatsResponse{
			Year:              m.Year,
			Month:             m.Month,
			TotalAmount:       m.TotalAmount,
			ExpenseCount:      m.ExpenseCount,
			AverageExpense:    m.AverageExpense,
			CategoryBreakdown: m.CategoryBreakdown,
		}
	}
	return resp
}

type householdResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
	CreatedAt int64  `json:"created_at"`
}

type memberResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type sessionResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

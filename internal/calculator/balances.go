package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hausmate/hausmate/internal/models"
)

// Member carries the user details needed to label a balance row.
type Member struct {
	ID    string
	Name  string
	Email string
}

// MemberBalance is one household member's aggregate position.
type MemberBalance struct {
	UserID    string
	UserName  string
	UserEmail string
	// TotalPaid is the sum of non-personal expenses this member created.
	TotalPaid decimal.Decimal
	// TotalOwed is the sum owed by this member across all splits,
	// settled or not.
	TotalOwed decimal.Decimal
	// Balance is TotalPaid - TotalOwed. Positive means the household
	// owes this member money.
	Balance decimal.Decimal
}

// HouseholdSummary aggregates the shared ledger of one household.
type HouseholdSummary struct {
	HouseholdID   string
	TotalExpenses decimal.Decimal
	TotalSettled  decimal.Decimal
	TotalPending  decimal.Decimal
	ExpenseCount  int
	UserBalances  []MemberBalance
}

// SummarizeHousehold recomputes the household summary from the current
// expense and split rows. Personal expenses carry no splits and are excluded
// from the shared totals and balances. No caching; callers run this on every
// request.
func SummarizeHousehold(householdID string, members []Member, expenses []*models.Expense, splits []*models.ExpenseSplit) HouseholdSummary {
	summary := HouseholdSummary{
		HouseholdID:   householdID,
		TotalExpenses: decimal.Zero,
		TotalSettled:  decimal.Zero,
		TotalPending:  decimal.Zero,
	}

	paid := make(map[string]decimal.Decimal)
	owed := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		if e.IsPersonal {
			continue
		}
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
		summary.ExpenseCount++
		paid[e.CreatedBy] = paid[e.CreatedBy].Add(e.Amount)
	}

	for _, s := range splits {
		owed[s.UserID] = owed[s.UserID].Add(s.AmountOwed)
		if s.IsSettled {
			summary.TotalSettled = summary.TotalSettled.Add(s.AmountOwed)
		} else {
			summary.TotalPending = summary.TotalPending.Add(s.AmountOwed)
		}
	}

	summary.UserBalances = make([]MemberBalance, 0, len(members))
	for _, m := range members {
		p := paid[m.ID]
		o := owed[m.ID]
		summary.UserBalances = append(summary.UserBalances, MemberBalance{
			UserID:    m.ID,
			UserName:  m.Name,
			UserEmail: m.Email,
			TotalPaid: p,
			TotalOwed: o,
			Balance:   p.Sub(o),
		})
	}

	return summary
}

// MonthlyStats breaks a user's spending down for one calendar month.
type MonthlyStats struct {
	Year              int
	Month             int
	TotalAmount       decimal.Decimal
	ExpenseCount      int
	CategoryBreakdown map[models.ExpenseCategory]decimal.Decimal
	AverageExpense    decimal.Decimal
}

// PersonalAnalytics is a single user's spending breakdown over a rolling
// window.
type PersonalAnalytics struct {
	UserID      string
	HouseholdID string
	PeriodStart int64
	PeriodEnd   int64
	// TotalSpent is the sum of expenses the user created in the window,
	// personal and shared alike.
	TotalSpent decimal.Decimal
	// TotalPaidForOthers is the portion of the user's shared expenses
	// owed by other members (amount minus the user's own share).
	TotalPaidForOthers decimal.Decimal
	// TotalOwedByUser is what the user owes on other members' expenses.
	TotalOwedByUser   decimal.Decimal
	NetBalance        decimal.Decimal
	ExpenseCount      int
	CategoryBreakdown map[models.ExpenseCategory]decimal.Decimal
	MonthlyStats      []MonthlyStats
}

// AnalyzeUserExpenses computes personal analytics for userID over
// [periodStart, periodEnd]. expenses must be the household's expenses dated
// inside the window and splits the splits of those expenses; filtering by
// date is the caller's job.
func AnalyzeUserExpenses(userID, householdID string, periodStart, periodEnd int64, expenses []*models.Expense, splits []*models.ExpenseSplit) PersonalAnalytics {
	a := PersonalAnalytics{
		UserID:             userID,
		HouseholdID:        householdID,
		PeriodStart:        periodStart,
		PeriodEnd:          periodEnd,
		TotalSpent:         decimal.Zero,
		TotalPaidForOthers: decimal.Zero,
		TotalOwedByUser:    decimal.Zero,
		CategoryBreakdown:  make(map[models.ExpenseCategory]decimal.Decimal),
	}

	// Index the user's own share per expense, and what they owe elsewhere.
	ownShare := make(map[string]decimal.Decimal)
	creators := make(map[string]string, len(expenses))
	for _, e := range expenses {
		creators[e.ID] = e.CreatedBy
	}
	for _, s := range splits {
		if s.UserID != userID {
			continue
		}
		if creators[s.ExpenseID] == userID {
			ownShare[s.ExpenseID] = s.AmountOwed
		} else {
			a.TotalOwedByUser = a.TotalOwedByUser.Add(s.AmountOwed)
		}
	}

	monthly := make(map[[2]int]*MonthlyStats)

	for _, e := range expenses {
		if e.CreatedBy != userID {
			continue
		}

		a.TotalSpent = a.TotalSpent.Add(e.Amount)
		a.ExpenseCount++
		a.CategoryBreakdown[e.Category] = a.CategoryBreakdown[e.Category].Add(e.Amount)

		if !e.IsPersonal {
			a.TotalPaidForOthers = a.TotalPaidForOthers.Add(e.Amount.Sub(ownShare[e.ID]))
		}

		date := time.Unix(e.Date, 0).UTC()
		key := [2]int{date.Year(), int(date.Month())}
		stats, ok := monthly[key]
		if !ok {
			stats = &MonthlyStats{
				Year:              key[0],
				Month:             key[1],
				TotalAmount:       decimal.Zero,
				CategoryBreakdown: make(map[models.ExpenseCategory]decimal.Decimal),
			}
			monthly[key] = stats
		}
		stats.TotalAmount = stats.TotalAmount.Add(e.Amount)
		stats.ExpenseCount++
		stats.CategoryBreakdown[e.Category] = stats.CategoryBreakdown[e.Category].Add(e.Amount)
	}

	a.NetBalance = a.TotalPaidForOthers.Sub(a.TotalOwedByUser)

	a.MonthlyStats = make([]MonthlyStats, 0, len(monthly))
	for _, stats := range monthly {
		stats.AverageExpense = stats.TotalAmount.DivRound(decimal.NewFromInt(int64(stats.ExpenseCount)), 2)
		a.MonthlyStats = append(a.MonthlyStats, *stats)
	}
	sort.Slice(a.MonthlyStats, func(i, j int) bool {
		if a.MonthlyStats[i].Year != a.MonthlyStats[j].Year {
			return a.MonthlyStats[i].Year < a.MonthlyStats[j].Year
		}
		return a.MonthlyStats[i].Month < a.MonthlyStats[j].Month
	})

	return a
}

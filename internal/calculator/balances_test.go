package calculator

import (
	"testing"
	"time"

	"github.com/hausmate/hausmate/internal/models"
)

func TestSummarizeHousehold(t *testing.T) {
	members := []Member{
		{ID: "u1", Name: "Alice", Email: "alice@example.com"},
		{ID: "u2", Name: "Bob", Email: "bob@example.com"},
	}

	// Expense A: 30.00 paid by u1, split equally.
	// Expense B: 12.00 personal to u2 (no splits, excluded from totals).
	expenses := []*models.Expense{
		{ID: "e1", HouseholdID: "h1", CreatedBy: "u1", Amount: dec("30.00")},
		{ID: "e2", HouseholdID: "h1", CreatedBy: "u2", Amount: dec("12.00"), IsPersonal: true},
	}
	splits := []*models.ExpenseSplit{
		{ID: "s1", ExpenseID: "e1", UserID: "u1", AmountOwed: dec("15.00"), IsSettled: true},
		{ID: "s2", ExpenseID: "e1", UserID: "u2", AmountOwed: dec("15.00")},
	}

	summary := SummarizeHousehold("h1", members, expenses, splits)

	if summary.TotalExpenses.StringFixed(2) != "30.00" {
		t.Errorf("TotalExpenses = %s, want 30.00", summary.TotalExpenses.StringFixed(2))
	}
	if summary.TotalSettled.StringFixed(2) != "15.00" {
		t.Errorf("TotalSettled = %s, want 15.00", summary.TotalSettled.StringFixed(2))
	}
	if summary.TotalPending.StringFixed(2) != "15.00" {
		t.Errorf("TotalPending = %s, want 15.00", summary.TotalPending.StringFixed(2))
	}
	if summary.ExpenseCount != 1 {
		t.Errorf("ExpenseCount = %d, want 1", summary.ExpenseCount)
	}

	if len(summary.UserBalances) != 2 {
		t.Fatalf("got %d balances, want 2", len(summary.UserBalances))
	}

	// u1 paid 30, owes their own 15 share: balance +15. The personal
	// expense B must not affect either balance.
	u1 := summary.UserBalances[0]
	if u1.UserID != "u1" || u1.Balance.StringFixed(2) != "15.00" {
		t.Errorf("u1 balance = %s, want 15.00", u1.Balance.StringFixed(2))
	}
	u2 := summary.UserBalances[1]
	if u2.TotalPaid.StringFixed(2) != "0.00" {
		t.Errorf("u2 TotalPaid = %s, want 0.00", u2.TotalPaid.StringFixed(2))
	}
	if u2.Balance.StringFixed(2) != "-15.00" {
		t.Errorf("u2 balance = %s, want -15.00", u2.Balance.StringFixed(2))
	}
}

func TestSummarizeHouseholdEmpty(t *testing.T) {
	members := []Member{{ID: "u1", Name: "Alice", Email: "alice@example.com"}}

	summary := SummarizeHousehold("h1", members, nil, nil)

	if summary.ExpenseCount != 0 {
		t.Errorf("ExpenseCount = %d, want 0", summary.ExpenseCount)
	}
	if !summary.TotalExpenses.IsZero() {
		t.Errorf("TotalExpenses = %s, want 0", summary.TotalExpenses)
	}
	if len(summary.UserBalances) != 1 {
		t.Fatalf("got %d balances, want 1", len(summary.UserBalances))
	}
	if !summary.UserBalances[0].Balance.IsZero() {
		t.Errorf("balance = %s, want 0", summary.UserBalances[0].Balance)
	}
}

func TestAnalyzeUserExpenses(t *testing.T) {
	jan := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC).Unix()
	feb := time.Date(2025, time.February, 5, 12, 0, 0, 0, time.UTC).Unix()
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	end := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC).Unix()

	expenses := []*models.Expense{
		// Shared, created by u1, split 20/10 with u2.
		{ID: "e1", CreatedBy: "u1", Amount: dec("30.00"), Category: models.CategoryGroceries, Date: jan},
		// Personal to u1.
		{ID: "e2", CreatedBy: "u1", Amount: dec("8.00"), Category: models.CategoryFood, IsPersonal: true, Date: feb},
		// Shared, created by u2; u1 owes 5.
		{ID: "e3", CreatedBy: "u2", Amount: dec("10.00"), Category: models.CategoryUtilities, Date: feb},
	}
	splits := []*models.ExpenseSplit{
		{ID: "s1", ExpenseID: "e1", UserID: "u1", AmountOwed: dec("20.00"), IsSettled: true},
		{ID: "s2", ExpenseID: "e1", UserID: "u2", AmountOwed: dec("10.00")},
		{ID: "s3", ExpenseID: "e3", UserID: "u1", AmountOwed: dec("5.00")},
		{ID: "s4", ExpenseID: "e3", UserID: "u2", AmountOwed: dec("5.00")},
	}

	a := AnalyzeUserExpenses("u1", "h1", start, end, expenses, splits)

	if a.TotalSpent.StringFixed(2) != "38.00" {
		t.Errorf("TotalSpent = %s, want 38.00", a.TotalSpent.StringFixed(2))
	}
	// e1: 30 minus u1's own 20 share = 10 fronted for others.
	if a.TotalPaidForOthers.StringFixed(2) != "10.00" {
		t.Errorf("TotalPaidForOthers = %s, want 10.00", a.TotalPaidForOthers.StringFixed(2))
	}
	if a.TotalOwedByUser.StringFixed(2) != "5.00" {
		t.Errorf("TotalOwedByUser = %s, want 5.00", a.TotalOwedByUser.StringFixed(2))
	}
	if a.NetBalance.StringFixed(2) != "5.00" {
		t.Errorf("NetBalance = %s, want 5.00", a.NetBalance.StringFixed(2))
	}
	if a.ExpenseCount != 2 {
		t.Errorf("ExpenseCount = %d, want 2", a.ExpenseCount)
	}

	if got := a.CategoryBreakdown[models.CategoryGroceries]; got.StringFixed(2) != "30.00" {
		t.Errorf("groceries breakdown = %s, want 30.00", got.StringFixed(2))
	}
	if got := a.CategoryBreakdown[models.CategoryFood]; got.StringFixed(2) != "8.00" {
		t.Errorf("food breakdown = %s, want 8.00", got.StringFixed(2))
	}
	// e3 was created by u2 and must not appear in u1's breakdown.
	if _, ok := a.CategoryBreakdown[models.CategoryUtilities]; ok {
		t.Error("utilities should not appear in u1's category breakdown")
	}

	if len(a.MonthlyStats) != 2 {
		t.Fatalf("got %d monthly stats, want 2", len(a.MonthlyStats))
	}
	janStats := a.MonthlyStats[0]
	if janStats.Year != 2025 || janStats.Month != 1 {
		t.Errorf("first month = %d-%d, want 2025-1", janStats.Year, janStats.Month)
	}
	if janStats.TotalAmount.StringFixed(2) != "30.00" {
		t.Errorf("january total = %s, want 30.00", janStats.TotalAmount.StringFixed(2))
	}
	if janStats.AverageExpense.StringFixed(2) != "30.00" {
		t.Errorf("january average = %s, want 30.00", janStats.AverageExpense.StringFixed(2))
	}
	febStats := a.MonthlyStats[1]
	if febStats.ExpenseCount != 1 || febStats.TotalAmount.StringFixed(2) != "8.00" {
		t.Errorf("february = count %d total %s, want 1 and 8.00", febStats.ExpenseCount, febStats.TotalAmount.StringFixed(2))
	}
}

func TestAnalyzeUserExpensesAverage(t *testing.T) {
	jan := time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC).Unix()
	expenses := []*models.Expense{
		{ID: "e1", CreatedBy: "u1", Amount: dec("10.00"), Category: models.CategoryOther, IsPersonal: true, Date: jan},
		{ID: "e2", CreatedBy: "u1", Amount: dec("5.00"), Category: models.CategoryOther, IsPersonal: true, Date: jan},
		{ID: "e3", CreatedBy: "u1", Amount: dec("5.00"), Category: models.CategoryOther, IsPersonal: true, Date: jan},
	}

	a := AnalyzeUserExpenses("u1", "h1", 0, jan+1, expenses, nil)

	if len(a.MonthlyStats) != 1 {
		t.Fatalf("got %d monthly stats, want 1", len(a.MonthlyStats))
	}
	// 20 / 3 rounds to 6.67.
	if got := a.MonthlyStats[0].AverageExpense.StringFixed(2); got != "6.67" {
		t.Errorf("average = %s, want 6.67", got)
	}
	if !a.TotalPaidForOthers.IsZero() {
		t.Errorf("TotalPaidForOthers = %s, want 0", a.TotalPaidForOthers)
	}
}

package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hausmate/hausmate/internal/models"
	"github.com/hausmate/hausmate/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "hausmate-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedUser(t *testing.T, store *SQLiteStore, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func seedHousehold(t *testing.T, store *SQLiteStore, creator *models.User) *models.Household {
	t.Helper()
	household := &models.Household{Name: "Test Flat", CreatedBy: creator.ID}
	if err := store.CreateHousehold(context.Background(), household); err != nil {
		t.Fatalf("CreateHousehold failed: %v", err)
	}
	return household
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUserStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create and get by email", func(t *testing.T) {
		user := seedUser(t, store, "alice@example.com", "Alice")

		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID {
			t.Fatalf("got %+v, want user %s", got, user.ID)
		}
		if got.DisplayName != "Alice" {
			t.Errorf("DisplayName = %q, want Alice", got.DisplayName)
		}
	})

	t.Run("unknown email returns nil without error", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil user, got %+v", got)
		}
	})

	t.Run("get users by ids omits missing", func(t *testing.T) {
		bob := seedUser(t, store, "bob@example.com", "Bob")

		users, err := store.GetUsersByIDs(ctx, []string{bob.ID, "missing-id"})
		if err != nil {
			t.Fatalf("GetUsersByIDs failed: %v", err)
		}
		if len(users) != 1 {
			t.Fatalf("got %d users, want 1", len(users))
		}
		if users[bob.ID] == nil {
			t.Error("expected bob in result")
		}
	})
}

func TestHouseholdStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")
	household := seedHousehold(t, store, alice)

	t.Run("creator is enrolled automatically", func(t *testing.T) {
		member, err := store.IsHouseholdMember(ctx, household.ID, alice.ID)
		if err != nil {
			t.Fatalf("IsHouseholdMember failed: %v", err)
		}
		if !member {
			t.Error("creator should be a member")
		}
	})

	t.Run("non-member is reported as such", func(t *testing.T) {
		member, err := store.IsHouseholdMember(ctx, household.ID, bob.ID)
		if err != nil {
			t.Fatalf("IsHouseholdMember failed: %v", err)
		}
		if member {
			t.Error("bob should not be a member yet")
		}
	})

	t.Run("add member and list", func(t *testing.T) {
		if err := store.AddHouseholdMember(ctx, household.ID, bob.ID); err != nil {
			t.Fatalf("AddHouseholdMember failed: %v", err)
		}

		members, err := store.ListHouseholdMembers(ctx, household.ID)
		if err != nil {
			t.Fatalf("ListHouseholdMembers failed: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("got %d members, want 2", len(members))
		}
	})

	t.Run("unknown household is not found", func(t *testing.T) {
		_, err := store.GetHousehold(ctx, "missing-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestExpenseStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")
	household := seedHousehold(t, store, alice)
	if err := store.AddHouseholdMember(ctx, household.ID, bob.ID); err != nil {
		t.Fatalf("AddHouseholdMember failed: %v", err)
	}

	newExpense := func(amount string) (*models.Expense, []*models.ExpenseSplit) {
		expense := &models.Expense{
			HouseholdID:   household.ID,
			CreatedBy:     alice.ID,
			Amount:        dec(amount),
			Description:   "weekly groceries",
			Category:      models.CategoryGroceries,
			PaymentMethod: models.PaymentCard,
			SplitType:     models.SplitEqual,
		}
		half := dec(amount).DivRound(decimal.NewFromInt(2), 2)
		splits := []*models.ExpenseSplit{
			{UserID: alice.ID, AmountOwed: half, IsSettled: true, SettledAt: time.Now().Unix()},
			{UserID: bob.ID, AmountOwed: half},
		}
		return expense, splits
	}

	t.Run("create generates ids and persists splits", func(t *testing.T) {
		expense, splits := newExpense("40.00")

		if err := store.CreateExpense(ctx, expense, splits); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" || expense.CreatedAt == 0 {
			t.Error("expected generated ID and CreatedAt")
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Amount.Equal(dec("40.00")) {
			t.Errorf("Amount = %s, want 40.00", got.Amount)
		}
		if got.Category != models.CategoryGroceries || got.SplitType != models.SplitEqual {
			t.Errorf("enum round-trip failed: %+v", got)
		}

		storedSplits, err := store.ListSplits(ctx, expense.ID)
		if err != nil {
			t.Fatalf("ListSplits failed: %v", err)
		}
		if len(storedSplits) != 2 {
			t.Fatalf("got %d splits, want 2", len(storedSplits))
		}
		for _, sp := range storedSplits {
			if !sp.AmountOwed.Equal(dec("20.00")) {
				t.Errorf("AmountOwed = %s, want 20.00", sp.AmountOwed)
			}
		}
	})

	t.Run("list filters by category and date", func(t *testing.T) {
		other := &models.Expense{
			HouseholdID:   household.ID,
			CreatedBy:     alice.ID,
			Amount:        dec("9.99"),
			Description:   "streaming",
			Category:      models.CategoryEntertainment,
			PaymentMethod: models.PaymentCard,
			SplitType:     models.SplitEqual,
			IsPersonal:    true,
			Date:          time.Now().AddDate(0, -2, 0).Unix(),
		}
		if err := store.CreateExpense(ctx, other, nil); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		byCategory, err := store.ListExpenses(ctx, storage.ExpenseFilter{
			HouseholdID: household.ID,
			Category:    models.CategoryEntertainment,
		})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(byCategory) != 1 || byCategory[0].ID != other.ID {
			t.Errorf("category filter returned %d rows", len(byCategory))
		}

		recent, err := store.ListExpenses(ctx, storage.ExpenseFilter{
			HouseholdID: household.ID,
			StartDate:   time.Now().AddDate(0, -1, 0).Unix(),
		})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		for _, e := range recent {
			if e.ID == other.ID {
				t.Error("date filter should exclude the two-month-old expense")
			}
		}
	})

	t.Run("settle skips already settled rows", func(t *testing.T) {
		expense, splits := newExpense("10.00")
		if err := store.CreateExpense(ctx, expense, splits); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		// splits[0] (alice's own) is already settled at creation.
		ids := []string{splits[0].ID, splits[1].ID}
		count, err := store.SettleSplits(ctx, expense.ID, ids, time.Now().Unix())
		if err != nil {
			t.Fatalf("SettleSplits failed: %v", err)
		}
		if count != 1 {
			t.Errorf("settled count = %d, want 1", count)
		}

		stored, err := store.ListSplits(ctx, expense.ID)
		if err != nil {
			t.Fatalf("ListSplits failed: %v", err)
		}
		for _, sp := range stored {
			if !sp.IsSettled || sp.SettledAt == 0 {
				t.Errorf("split %s should be settled with timestamp", sp.ID)
			}
		}
	})

	t.Run("settle scoped to expense", func(t *testing.T) {
		a, aSplits := newExpense("10.00")
		b, bSplits := newExpense("20.00")
		if err := store.CreateExpense(ctx, a, aSplits); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := store.CreateExpense(ctx, b, bSplits); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		// b's split id against a's expense must not match anything.
		count, err := store.SettleSplits(ctx, a.ID, []string{bSplits[1].ID}, time.Now().Unix())
		if err != nil {
			t.Fatalf("SettleSplits failed: %v", err)
		}
		if count != 0 {
			t.Errorf("settled count = %d, want 0", count)
		}
	})

	t.Run("update rewrites core fields only", func(t *testing.T) {
		expense, splits := newExpense("40.00")
		if err := store.CreateExpense(ctx, expense, splits); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expense.Amount = dec("45.50")
		expense.Description = "groceries plus cleaning supplies"
		expense.Category = models.CategoryCleaning
		if err := store.UpdateExpense(ctx, expense); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Amount.Equal(dec("45.50")) || got.Category != models.CategoryCleaning {
			t.Errorf("update not applied: %+v", got)
		}

		// Splits keep their original amounts.
		stored, err := store.ListSplits(ctx, expense.ID)
		if err != nil {
			t.Fatalf("ListSplits failed: %v", err)
		}
		for _, sp := range stored {
			if !sp.AmountOwed.Equal(dec("20.00")) {
				t.Errorf("split amount changed to %s", sp.AmountOwed)
			}
		}
	})

	t.Run("delete cascades to splits", func(t *testing.T) {
		expense, splits := newExpense("30.00")
		if err := store.CreateExpense(ctx, expense, splits); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}

		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetExpense error = %v, want ErrNotFound", err)
		}

		remaining, err := store.ListSplits(ctx, expense.ID)
		if err != nil {
			t.Fatalf("ListSplits failed: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("got %d splits after delete, want 0", len(remaining))
		}
	})

	t.Run("delete missing expense is not found", func(t *testing.T) {
		err := store.DeleteExpense(ctx, "missing-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/hausmate/hausmate/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
// Implementations wrap it with context; callers match with errors.Is.
var ErrNotFound = errors.New("not found")

// ExpenseFilter narrows an expense listing. Zero values mean "no filter".
type ExpenseFilter struct {
	HouseholdID string
	Category    models.ExpenseCategory
	// StartDate and EndDate bound the expense date (inclusive), Unix seconds.
	StartDate int64
	EndDate   int64
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when no such
	// user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID. Missing users
	// are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateHousehold persists a household and enrolls its creator as the
	// first member, atomically.
	CreateHousehold(ctx context.Context, household *models.Household) error

	// GetHousehold retrieves a household by ID.
	GetHousehold(ctx context.Context, id string) (*models.Household, error)

	// AddHouseholdMember enrolls a user into a household.
	AddHouseholdMember(ctx context.Context, householdID, userID string) error

	// IsHouseholdMember reports whether the user belongs to the household.
	IsHouseholdMember(ctx context.Context, householdID, userID string) (bool, error)

	// ListHouseholdMembers returns the household's members ordered by
	// join time.
	ListHouseholdMembers(ctx context.Context, householdID string) ([]*models.User, error)

	// CreateExpense persists an expense together with its splits in one
	// transaction. Partial writes are never visible.
	CreateExpense(ctx context.Context, expense *models.Expense, splits []*models.ExpenseSplit) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpenses returns expenses matching the filter, most recent
	// date first.
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]*models.Expense, error)

	// ListSplits returns the splits of one expense.
	ListSplits(ctx context.Context, expenseID string) ([]*models.ExpenseSplit, error)

	// ListHouseholdSplits returns every split attached to the
	// household's expenses.
	ListHouseholdSplits(ctx context.Context, householdID string) ([]*models.ExpenseSplit, error)

	// UpdateExpense rewrites the mutable fields of an expense row.
	// Splits are untouched.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense; its splits go with it by cascade.
	DeleteExpense(ctx context.Context, id string) error

	// SettleSplits marks the given splits of one expense as settled at
	// settledAt, in one transaction. Splits that are already settled are
	// left alone. Returns how many rows actually transitioned.
	SettleSplits(ctx context.Context, expenseID string, splitIDs []string, settledAt int64) (int, error)

	// Close releases any resources held by the store.
	Close() error
}

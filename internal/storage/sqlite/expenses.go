package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hausmate/hausmate/internal/models"
	"github.com/hausmate/hausmate/internal/storage"
)

// CreateExpense persists an expense and its splits atomically.
// IDs and timestamps are generated here when not already set.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense, splits []*models.ExpenseSplit) error {
	now := time.Now().Unix()
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Date == 0 {
		expense.Date = now
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, household_id, created_by, amount, description, category,
		                       payment_method, date, split_type, is_personal, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.HouseholdID, expense.CreatedBy, expense.Amount.StringFixed(2),
		expense.Description, string(expense.Category), string(expense.PaymentMethod),
		expense.Date, string(expense.SplitType), expense.IsPersonal,
		expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range splits {
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expense.ID
		if split.CreatedAt == 0 {
			split.CreatedAt = now
		}

		var settledAt interface{}
		if split.SettledAt != 0 {
			settledAt = split.SettledAt
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_splits (id, expense_id, user_id, amount_owed, is_settled, settled_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			split.ID, split.ExpenseID, split.UserID, split.AmountOwed.StringFixed(2),
			split.IsSettled, settledAt, split.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, household_id, created_by, amount, description, category,
		        payment_method, date, split_type, is_personal, created_at, updated_at
		 FROM expenses WHERE id = ?`,
		id,
	)

	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// ListExpenses returns expenses matching the filter, most recent date first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, filter storage.ExpenseFilter) ([]*models.Expense, error) {
	query := `SELECT id, household_id, created_by, amount, description, category,
	                 payment_method, date, split_type, is_personal, created_at, updated_at
	          FROM expenses WHERE household_id = ?`
	args := []interface{}{filter.HouseholdID}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, string(filter.Category))
	}
	if filter.StartDate != 0 {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != 0 {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}
	query += " ORDER BY date DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// ListSplits returns the splits of one expense, ordered by creation.
func (s *SQLiteStore) ListSplits(ctx context.Context, expenseID string) ([]*models.ExpenseSplit, error) {
	return s.querySplits(ctx,
		`SELECT id, expense_id, user_id, amount_owed, is_settled, settled_at, created_at
		 FROM expense_splits WHERE expense_id = ? ORDER BY created_at, id`,
		expenseID,
	)
}

// ListHouseholdSplits returns every split attached to the household's expenses.
func (s *SQLiteStore) ListHouseholdSplits(ctx context.Context, householdID string) ([]*models.ExpenseSplit, error) {
	return s.querySplits(ctx,
		`SELECT sp.id, sp.expense_id, sp.user_id, sp.amount_owed, sp.is_settled, sp.settled_at, sp.created_at
		 FROM expense_splits sp
		 JOIN expenses e ON e.id = sp.expense_id
		 WHERE e.household_id = ?
		 ORDER BY sp.created_at, sp.id`,
		householdID,
	)
}

// UpdateExpense rewrites the mutable fields of an expense row.
// Split rows are deliberately left alone.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses
		 SET amount = ?, description = ?, category = ?, payment_method = ?, date = ?, updated_at = ?
		 WHERE id = ?`,
		expense.Amount.StringFixed(2), expense.Description, string(expense.Category),
		string(expense.PaymentMethod), expense.Date, expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteExpense removes an expense; the splits cascade with it.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}

	return nil
}

// SettleSplits marks the given splits of one expense as settled, atomically.
// Already-settled rows are skipped by the is_settled guard, so concurrent
// settle requests never double-count. Returns the number of rows that
// actually transitioned.
func (s *SQLiteStore) SettleSplits(ctx context.Context, expenseID string, splitIDs []string, settledAt int64) (int, error) {
	if len(splitIDs) == 0 {
		return 0, nil
	}

	query := `UPDATE expense_splits
	          SET is_settled = 1, settled_at = ?
	          WHERE expense_id = ? AND is_settled = 0
	            AND id IN (?` + repeatPlaceholder(len(splitIDs)-1) + `)`

	args := make([]interface{}, 0, len(splitIDs)+2)
	args = append(args, settledAt, expenseID)
	for _, id := range splitIDs {
		args = append(args, id)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to settle splits: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check settle result: %w", err)
	}

	return int(affected), nil
}

func (s *SQLiteStore) querySplits(ctx context.Context, query string, args ...interface{}) ([]*models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	var splits []*models.ExpenseSplit
	for rows.Next() {
		split := &models.ExpenseSplit{}
		var settledAt sql.NullInt64
		if err := rows.Scan(
			&split.ID,
			&split.ExpenseID,
			&split.UserID,
			&split.AmountOwed,
			&split.IsSettled,
			&settledAt,
			&split.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if settledAt.Valid {
			split.SettledAt = settledAt.Int64
		}
		splits = append(splits, split)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating splits: %w", err)
	}

	return splits, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row scanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var category, paymentMethod, splitType string
	err := row.Scan(
		&expense.ID,
		&expense.HouseholdID,
		&expense.CreatedBy,
		&expense.Amount,
		&expense.Description,
		&category,
		&paymentMethod,
		&expense.Date,
		&splitType,
		&expense.IsPersonal,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	expense.Category = models.ExpenseCategory(category)
	expense.PaymentMethod = models.PaymentMethod(paymentMethod)
	expense.SplitType = models.SplitType(splitType)
	return expense, nil
}

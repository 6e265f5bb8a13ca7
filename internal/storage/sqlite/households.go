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

// CreateHousehold persists a household and enrolls the creator as its first
// member in one transaction.
func (s *SQLiteStore) CreateHousehold(ctx context.Context, household *models.Household) error {
	if household.ID == "" {
		household.ID = uuid.New().String()
	}
	if household.CreatedAt == 0 {
		household.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO households (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		household.ID, household.Name, household.CreatedBy, household.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO household_members (household_id, user_id, joined_at) VALUES (?, ?, ?)",
		household.ID, household.CreatedBy, household.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetHousehold retrieves a household by ID.
func (s *SQLiteStore) GetHousehold(ctx context.Context, id string) (*models.Household, error) {
	household := &models.Household{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM households WHERE id = ?",
		id,
	).Scan(&household.ID, &household.Name, &household.CreatedBy, &household.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("household %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}

	return household, nil
}

// AddHouseholdMember enrolls a user into a household.
func (s *SQLiteStore) AddHouseholdMember(ctx context.Context, householdID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO household_members (household_id, user_id, joined_at) VALUES (?, ?, ?)",
		householdID, userID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to add household member: %w", err)
	}
	return nil
}

// IsHouseholdMember reports whether the user belongs to the household.
func (s *SQLiteStore) IsHouseholdMember(ctx context.Context, householdID, userID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM household_members WHERE household_id = ? AND user_id = ?",
		householdID, userID,
	).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check household membership: %w", err)
	}

	return true, nil
}

// ListHouseholdMembers returns the household's members ordered by join time.
func (s *SQLiteStore) ListHouseholdMembers(ctx context.Context, householdID string) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.email, u.display_name, u.password_hash, u.created_at, u.updated_at
		 FROM users u
		 JOIN household_members m ON m.user_id = u.id
		 WHERE m.household_id = ?
		 ORDER BY m.joined_at, u.id`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list household members: %w", err)
	}
	defer rows.Close()

	var members []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.DisplayName,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}

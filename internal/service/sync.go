package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hausmate/hausmate/internal/models"
	"github.com/hausmate/hausmate/internal/storage"
)

// MergeAction is the decision for one incoming sync record.
type MergeAction string

const (
	ActionInsert MergeAction = "insert"
	ActionUpdate MergeAction = "update"
	ActionSkip   MergeAction = "skip"
)

// MergeExpense decides how to reconcile an incoming expense record against
// the stored one, using naive field-by-field last-write-wins on updated_at.
// existing == nil means the record is new. Concurrent merges racing on the
// same record are a known limitation: whichever commits last wins.
func MergeExpense(incoming, existing *models.Expense) MergeAction {
	if existing == nil {
		return ActionInsert
	}
	if incoming.UpdatedAt > existing.UpdatedAt {
		return ActionUpdate
	}
	return ActionSkip
}

// SyncResult reports the action taken for one incoming record.
type SyncResult struct {
	ExpenseID string
	Action    MergeAction
}

// SyncExpenses applies a batch of offline-client expense records, merging
// each with last-write-wins semantics. Updates touch only the core fields;
// splits are never created or resized here, so inserts are accepted only for
// personal expenses (shared expenses must go through Create to get valid
// splits).
func (s *ExpenseService) SyncExpenses(ctx context.Context, userID string, incoming []*models.Expense) ([]SyncResult, error) {
	results := make([]SyncResult, 0, len(incoming))

	for _, record := range incoming {
		if err := s.requireMember(ctx, record.HouseholdID, userID); err != nil {
			return nil, err
		}

		// Malformed records are dropped rather than failing the batch.
		if record.ID == "" || !record.Amount.IsPositive() ||
			!record.Category.Valid() || !record.PaymentMethod.Valid() {
			results = append(results, SyncResult{ExpenseID: record.ID, Action: ActionSkip})
			continue
		}

		existing, err := s.store.GetExpense(ctx, record.ID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}

		action := MergeExpense(record, existing)
		switch action {
		case ActionInsert:
			if !record.IsPersonal {
				action = ActionSkip
				break
			}
			record.CreatedBy = userID
			if err := s.store.CreateExpense(ctx, record, nil); err != nil {
				return nil, err
			}
		case ActionUpdate:
			if existing.CreatedBy != userID {
				action = ActionSkip
				break
			}
			existing.Amount = record.Amount.Round(2)
			existing.Description = record.Description
			existing.Category = record.Category
			existing.PaymentMethod = record.PaymentMethod
			existing.Date = record.Date
			if err := s.store.UpdateExpense(ctx, existing); err != nil {
				return nil, err
			}
		}

		results = append(results, SyncResult{ExpenseID: record.ID, Action: action})
	}

	slog.Info("Expense sync applied", "user_id", userID, "records", len(incoming))
	return results, nil
}

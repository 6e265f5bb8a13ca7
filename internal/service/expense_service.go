package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hausmate/hausmate/internal/calculator"
	"github.com/hausmate/hausmate/internal/models"
	"github.com/hausmate/hausmate/internal/storage"
)

// ExpenseService owns the expense ledger: creation with splits, reads with
// user enrichment, creator-only mutation, settlement and aggregation.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput carries a validated create request.
type CreateExpenseInput struct {
	HouseholdID   string
	Amount        decimal.Decimal
	Description   string
	Category      models.ExpenseCategory
	PaymentMethod models.PaymentMethod
	// Date is the Unix timestamp of the expense; 0 means "now".
	Date       int64
	SplitType  models.SplitType
	IsPersonal bool
	// Splits carries caller-supplied shares for custom/percentage types.
	Splits []calculator.SplitInput
}

// SplitDetail is a split enriched with the owing user's directory details.
type SplitDetail struct {
	ID         string
	ExpenseID  string
	UserID     string
	AmountOwed decimal.Decimal
	IsSettled  bool
	SettledAt  int64
	CreatedAt  int64
	UserName   string
	UserEmail  string
}

// ExpenseDetail is an expense with its splits and creator details.
type ExpenseDetail struct {
	Expense      *models.Expense
	CreatorName  string
	CreatorEmail string
	Splits       []SplitDetail
}

// SettlementResult reports the outcome of a settle operation.
type SettlementResult struct {
	SettledCount int
	SplitIDs     []string
	Message      string
}

// Create validates and persists a new expense with its splits in one
// transaction. The creator must be a household member; their own split is
// marked settled immediately since they paid the bill.
func (s *ExpenseService) Create(ctx context.Context, creatorID string, input CreateExpenseInput) (*ExpenseDetail, error) {
	if !input.Amount.IsPositive() {
		return nil, invalidInput("amount must be positive")
	}
	if input.Description == "" {
		return nil, invalidInput("description is required")
	}
	if !input.Category.Valid() {
		return nil, invalidInput("unknown category %q", input.Category)
	}
	if !input.PaymentMethod.Valid() {
		return nil, invalidInput("unknown payment method %q", input.PaymentMethod)
	}
	if !input.SplitType.Valid() {
		return nil, invalidInput("unknown split type %q", input.SplitType)
	}

	if err := s.requireMember(ctx, input.HouseholdID, creatorID); err != nil {
		return nil, err
	}

	amount := input.Amount.Round(2)
	now := time.Now().Unix()

	var splits []*models.ExpenseSplit
	if input.IsPersonal {
		if len(input.Splits) > 0 {
			return nil, invalidInput("personal expenses cannot have splits")
		}
	} else {
		var err error
		splits, err = s.buildSplits(ctx, creatorID, input, amount, now)
		if err != nil {
			return nil, err
		}
	}

	expense := &models.Expense{
		HouseholdID:   input.HouseholdID,
		CreatedBy:     creatorID,
		Amount:        amount,
		Description:   input.Description,
		Category:      input.Category,
		PaymentMethod: input.PaymentMethod,
		Date:          input.Date,
		SplitType:     input.SplitType,
		IsPersonal:    input.IsPersonal,
	}

	if err := s.store.CreateExpense(ctx, expense, splits); err != nil {
		slog.Error("CreateExpense failed", "household_id", input.HouseholdID, "error", err)
		return nil, err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"household_id", expense.HouseholdID,
		"amount", expense.Amount.StringFixed(2),
		"split_type", expense.SplitType,
		"splits", len(splits),
	)

	return s.enrich(ctx, expense, splits)
}

// buildSplits resolves the split rows for a non-personal expense according
// to its split type. All validation happens here, before any write.
func (s *ExpenseService) buildSplits(ctx context.Context, creatorID string, input CreateExpenseInput, amount decimal.Decimal, now int64) ([]*models.ExpenseSplit, error) {
	var inputs []calculator.SplitInput

	switch input.SplitType {
	case models.SplitEqual:
		members, err := s.store.ListHouseholdMembers(ctx, input.HouseholdID)
		if err != nil {
			return nil, err
		}
		memberIDs := make([]string, len(members))
		for i, m := range members {
			memberIDs[i] = m.ID
		}

		shares, err := calculator.EqualSplit(amount, memberIDs)
		if err != nil {
			if errors.Is(err, calculator.ErrNoMembers) {
				return nil, invalidInput("household has no members to split among")
			}
			return nil, err
		}
		for _, id := range memberIDs {
			inputs = append(inputs, calculator.SplitInput{UserID: id, AmountOwed: shares[id]})
		}

	case models.SplitCustom, models.SplitPercentage:
		if len(input.Splits) == 0 {
			return nil, invalidInput("splits are required for %s split type", input.SplitType)
		}
		// Membership is verified per split, before the sum check.
		for _, sp := range input.Splits {
			if err := s.requireMember(ctx, input.HouseholdID, sp.UserID); err != nil {
				if errors.Is(err, ErrForbidden) {
					return nil, fmt.Errorf("split user %s is not a household member: %w", sp.UserID, ErrForbidden)
				}
				return nil, err
			}
		}
		if err := calculator.ValidateSplits(amount, input.Splits); err != nil {
			var mismatch *calculator.SumMismatchError
			if errors.As(err, &mismatch) {
				return nil, mismatch
			}
			return nil, invalidInput("%s", err)
		}
		inputs = input.Splits
	}

	splits := make([]*models.ExpenseSplit, len(inputs))
	for i, in := range inputs {
		split := &models.ExpenseSplit{
			UserID:     in.UserID,
			AmountOwed: in.AmountOwed,
		}
		// The creator fronted the money; their own share is settled
		// from the start.
		if in.UserID == creatorID {
			split.IsSettled = true
			split.SettledAt = now
		}
		splits[i] = split
	}
	return splits, nil
}

// Get returns an expense with its splits, each enriched with the owing
// user's name and email. The requester must be a member of the expense's
// household.
func (s *ExpenseService) Get(ctx context.Context, requesterID, expenseID string) (*ExpenseDetail, error) {
	expense, err := s.loadExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, expense.HouseholdID, requesterID); err != nil {
		return nil, err
	}

	splits, err := s.store.ListSplits(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, expense, splits)
}

// List returns the household's expenses matching the filter, newest first.
func (s *ExpenseService) List(ctx context.Context, requesterID string, filter storage.ExpenseFilter) ([]*models.Expense, error) {
	if filter.HouseholdID == "" {
		return nil, invalidInput("household_id is required")
	}
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, invalidInput("unknown category %q", filter.Category)
	}
	if err := s.requireMember(ctx, filter.HouseholdID, requesterID); err != nil {
		return nil, err
	}

	return s.store.ListExpenses(ctx, filter)
}

// UpdateExpenseInput carries a partial update; nil fields are left unchanged.
// Split type and is_personal are immutable after creation.
type UpdateExpenseInput struct {
	Amount        *decimal.Decimal
	Description   *string
	Category      *models.ExpenseCategory
	PaymentMethod *models.PaymentMethod
	Date          *int64
}

// Update applies a partial update to the expense's core fields. Only the
// creator may update. Existing splits are not resized or re-validated when
// the amount changes; the stored splits keep their original amounts.
func (s *ExpenseService) Update(ctx context.Context, requesterID, expenseID string, patch UpdateExpenseInput) (*models.Expense, error) {
	expense, err := s.loadExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CreatedBy != requesterID {
		return nil, fmt.Errorf("only the creator may update an expense: %w", ErrForbidden)
	}

	if patch.Amount != nil {
		if !patch.Amount.IsPositive() {
			return nil, invalidInput("amount must be positive")
		}
		expense.Amount = patch.Amount.Round(2)
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return nil, invalidInput("description cannot be empty")
		}
		expense.Description = *patch.Description
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return nil, invalidInput("unknown category %q", *patch.Category)
		}
		expense.Category = *patch.Category
	}
	if patch.PaymentMethod != nil {
		if !patch.PaymentMethod.Valid() {
			return nil, invalidInput("unknown payment method %q", *patch.PaymentMethod)
		}
		expense.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Date != nil {
		expense.Date = *patch.Date
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("expense %s: %w", expenseID, ErrNotFound)
		}
		return nil, err
	}

	slog.Info("Expense updated", "expense_id", expense.ID, "user_id", requesterID)
	return expense, nil
}

// Delete removes an expense and, by cascade, all of its splits. Only the
// creator may delete.
func (s *ExpenseService) Delete(ctx context.Context, requesterID, expenseID string) error {
	expense, err := s.loadExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.CreatedBy != requesterID {
		return fmt.Errorf("only the creator may delete an expense: %w", ErrForbidden)
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("expense %s: %w", expenseID, ErrNotFound)
		}
		return err
	}

	slog.Info("Expense deleted", "expense_id", expenseID, "user_id", requesterID)
	return nil
}

// Settle marks the requested splits of one expense as settled. Every id must
// resolve to a split of that expense, otherwise nothing changes and the
// unresolved ids are reported. Already-settled splits are skipped and not
// counted.
func (s *ExpenseService) Settle(ctx context.Context, requesterID, expenseID string, splitIDs []string) (*SettlementResult, error) {
	if len(splitIDs) == 0 {
		return nil, invalidInput("split_ids is required")
	}

	expense, err := s.loadExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, expense.HouseholdID, requesterID); err != nil {
		return nil, err
	}

	splits, err := s.store.ListSplits(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.ExpenseSplit, len(splits))
	for _, sp := range splits {
		byID[sp.ID] = sp
	}

	var missing, toSettle []string
	for _, id := range splitIDs {
		sp, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if !sp.IsSettled {
			toSettle = append(toSettle, id)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingSplitsError{ExpenseID: expenseID, SplitIDs: missing}
	}

	count, err := s.store.SettleSplits(ctx, expenseID, toSettle, time.Now().Unix())
	if err != nil {
		return nil, err
	}

	slog.Info("Splits settled",
		"expense_id", expenseID,
		"user_id", requesterID,
		"requested", len(splitIDs),
		"settled", count,
	)

	return &SettlementResult{
		SettledCount: count,
		SplitIDs:     toSettle,
		Message:      fmt.Sprintf("Settled %d split(s)", count),
	}, nil
}

// Summary recomputes the household's shared-expense summary and per-member
// balances from the current ledger rows.
func (s *ExpenseService) Summary(ctx context.Context, requesterID, householdID string) (*calculator.HouseholdSummary, error) {
	if _, err := s.store.GetHousehold(ctx, householdID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("household %s: %w", householdID, ErrNotFound)
		}
		return nil, err
	}
	if err := s.requireMember(ctx, householdID, requesterID); err != nil {
		return nil, err
	}

	members, err := s.store.ListHouseholdMembers(ctx, householdID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{HouseholdID: householdID})
	if err != nil {
		return nil, err
	}
	splits, err := s.store.ListHouseholdSplits(ctx, householdID)
	if err != nil {
		return nil, err
	}

	calcMembers := make([]calculator.Member, len(members))
	for i, m := range members {
		calcMembers[i] = calculator.Member{ID: m.ID, Name: m.DisplayName, Email: m.Email}
	}

	summary := calculator.SummarizeHousehold(householdID, calcMembers, expenses, splits)
	return &summary, nil
}

// maxAnalyticsMonths caps the personal-analytics rolling window.
const maxAnalyticsMonths = 12

// Analytics computes a personal spending breakdown over a rolling window of
// whole months ending now. Only the user themselves may request it.
func (s *ExpenseService) Analytics(ctx context.Context, requesterID, userID, householdID string, months int) (*calculator.PersonalAnalytics, error) {
	if requesterID != userID {
		return nil, fmt.Errorf("analytics are visible only to their owner: %w", ErrForbidden)
	}
	if months <= 0 {
		months = 1
	}
	if months > maxAnalyticsMonths {
		return nil, invalidInput("months must be between 1 and %d", maxAnalyticsMonths)
	}
	if err := s.requireMember(ctx, householdID, requesterID); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, -months, 0)

	expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{
		HouseholdID: householdID,
		StartDate:   start.Unix(),
		EndDate:     end.Unix(),
	})
	if err != nil {
		return nil, err
	}

	householdSplits, err := s.store.ListHouseholdSplits(ctx, householdID)
	if err != nil {
		return nil, err
	}

	// Keep only splits of expenses inside the window.
	inWindow := make(map[string]bool, len(expenses))
	for _, e := range expenses {
		inWindow[e.ID] = true
	}
	var splits []*models.ExpenseSplit
	for _, sp := range householdSplits {
		if inWindow[sp.ExpenseID] {
			splits = append(splits, sp)
		}
	}

	analytics := calculator.AnalyzeUserExpenses(userID, householdID, start.Unix(), end.Unix(), expenses, splits)
	return &analytics, nil
}

// loadExpense fetches an expense, translating storage misses to ErrNotFound.
func (s *ExpenseService) loadExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("expense %s: %w", expenseID, ErrNotFound)
		}
		return nil, err
	}
	return expense, nil
}

// requireMember checks household membership, wrapping non-membership in
// ErrForbidden.
func (s *ExpenseService) requireMember(ctx context.Context, householdID, userID string) error {
	member, err := s.store.IsHouseholdMember(ctx, householdID, userID)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("user %s is not a member of household %s: %w", userID, householdID, ErrForbidden)
	}
	return nil
}

// enrich attaches user directory details to the expense and its splits.
func (s *ExpenseService) enrich(ctx context.Context, expense *models.Expense, splits []*models.ExpenseSplit) (*ExpenseDetail, error) {
	ids := make([]string, 0, len(splits)+1)
	ids = append(ids, expense.CreatedBy)
	for _, sp := range splits {
		ids = append(ids, sp.UserID)
	}

	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	detail := &ExpenseDetail{Expense: expense}
	if creator := users[expense.CreatedBy]; creator != nil {
		detail.CreatorName = creator.DisplayName
		detail.CreatorEmail = creator.Email
	}

	detail.Splits = make([]SplitDetail, len(splits))
	for i, sp := range splits {
		d := SplitDetail{
			ID:         sp.ID,
			ExpenseID:  sp.ExpenseID,
			UserID:     sp.UserID,
			AmountOwed: sp.AmountOwed,
			IsSettled:  sp.IsSettled,
			SettledAt:  sp.SettledAt,
			CreatedAt:  sp.CreatedAt,
		}
		if u := users[sp.UserID]; u != nil {
			d.UserName = u.DisplayName
			d.UserEmail = u.Email
		}
		detail.Splits[i] = d
	}

	return detail, nil
}

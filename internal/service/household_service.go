package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hausmate/hausmate/internal/models"
	"github.com/hausmate/hausmate/internal/storage"
)

// HouseholdService manages households and their membership. The expense
// ledger consumes it indirectly through the store's membership queries.
type HouseholdService struct {
	store storage.Store
}

// NewHouseholdService creates a HouseholdService with the given storage backend.
func NewHouseholdService(store storage.Store) *HouseholdService {
	return &HouseholdService{store: store}
}

// Member is a household member's public directory entry.
type Member struct {
	UserID      string
	DisplayName string
	Email       string
}

// Create persists a new household with the creator as its first member.
func (s *HouseholdService) Create(ctx context.Context, creatorID, name string) (*models.Household, error) {
	if name == "" {
		return nil, invalidInput("household name is required")
	}

	household := &models.Household{Name: name, CreatedBy: creatorID}
	if err := s.store.CreateHousehold(ctx, household); err != nil {
		return nil, err
	}

	slog.Info("Household created", "household_id", household.ID, "user_id", creatorID)
	return household, nil
}

// Join enrolls the user into an existing household.
func (s *HouseholdService) Join(ctx context.Context, userID, householdID string) (*models.Household, error) {
	household, err := s.store.GetHousehold(ctx, householdID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("household %s: %w", householdID, ErrNotFound)
		}
		return nil, err
	}

	member, err := s.store.IsHouseholdMember(ctx, householdID, userID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, invalidInput("already a member of this household")
	}

	if err := s.store.AddHouseholdMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	slog.Info("User joined household", "household_id", householdID, "user_id", userID)
	return household, nil
}

// Members lists the household's members. Only members may see each other.
func (s *HouseholdService) Members(ctx context.Context, requesterID, householdID string) ([]Member, error) {
	isMember, err := s.store.IsHouseholdMember(ctx, householdID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, fmt.Errorf("user %s is not a member of household %s: %w", requesterID, householdID, ErrForbidden)
	}

	users, err := s.store.ListHouseholdMembers(ctx, householdID)
	if err != nil {
		return nil, err
	}

	members := make([]Member, len(users))
	for i, u := range users {
		members[i] = Member{UserID: u.ID, DisplayName: u.DisplayName, Email: u.Email}
	}
	return members, nil
}

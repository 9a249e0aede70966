package babies

import (
	"context"
	"fmt"
	"time"

	"github.com/cradle/cradle/internal/tracker"
)

// BabyService implements the BabyManager interface
type BabyService struct {
	store BabyStore
}

// NewService creates a new baby service
func NewService(store BabyStore) *BabyService {
	return &BabyService{
		store: store,
	}
}

// RegisterBaby registers a new baby profile
func (s *BabyService) RegisterBaby(ctx context.Context, req *RegisterBabyRequest) (*Baby, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Check if baby already exists
	existing, err := s.store.GetBaby(ctx, req.BabyID)
	if err == nil && existing != nil {
		return nil, tracker.NewAlreadyExistsError("baby", req.BabyID)
	}

	now := time.Now()
	baby := &Baby{
		ID:        req.BabyID,
		UserID:    req.UserID,
		Name:      req.Name,
		BirthDate: req.BirthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateBaby(ctx, baby); err != nil {
		return nil, fmt.Errorf("failed to register baby: %w", err)
	}

	return baby, nil
}

// GetBaby retrieves a baby profile
func (s *BabyService) GetBaby(ctx context.Context, babyID string) (*Baby, error) {
	if babyID == "" {
		return nil, fmt.Errorf("baby_id is required")
	}
	return s.store.GetBaby(ctx, babyID)
}

// ListBabies lists the baby profiles owned by a user
func (s *BabyService) ListBabies(ctx context.Context, userID string) ([]*Baby, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	return s.store.ListBabies(ctx, userID)
}

// DeleteBaby deletes a baby profile
func (s *BabyService) DeleteBaby(ctx context.Context, babyID string) error {
	if babyID == "" {
		return fmt.Errorf("baby_id is required")
	}
	return s.store.DeleteBaby(ctx, babyID)
}

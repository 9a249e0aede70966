package users

import (
	"context"
	"fmt"
	"time"
)

// Service implements the UserManager interface
type Service struct {
	store UserStore
}

// NewService creates a new caregiver account service
func NewService(store UserStore) *Service {
	return &Service{
		store: store,
	}
}

// CreateUser registers a new caregiver account
func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user := NewUser(req, time.Now())

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a caregiver account
func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	return s.store.GetUser(ctx, userID)
}

// DeleteUser deletes a caregiver account
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}
	return s.store.DeleteUser(ctx, userID)
}

package users

import (
	"context"
	"sync"

	"github.com/cradle/cradle/internal/tracker"
)

// InMemoryStore implements UserStore interface with in-memory storage
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users: make(map[string]*User),
	}
}

// CreateUser creates a new caregiver account
func (s *InMemoryStore) CreateUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; exists {
		return tracker.NewAlreadyExistsError("user", user.UserID)
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return tracker.NewAlreadyExistsError("user", user.Email)
		}
	}

	copied := *user
	s.users[user.UserID] = &copied
	return nil
}

// GetUser retrieves a caregiver account by ID
func (s *InMemoryStore) GetUser(ctx context.Context, userID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, tracker.NewNotFoundError("user", userID)
	}

	copied := *user
	return &copied, nil
}

// DeleteUser removes a caregiver account
func (s *InMemoryStore) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[userID]; !exists {
		return tracker.NewNotFoundError("user", userID)
	}

	delete(s.users, userID)
	return nil
}

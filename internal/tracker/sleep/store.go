package sleep

import (
	"context"
	"sort"
	"sync"

	"github.com/cradle/cradle/internal/tracker"
)

// InMemoryStore implements SessionStore interface with in-memory storage
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]*Session),
	}
}

// CreateSession creates a new sleep session
func (s *InMemoryStore) CreateSession(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return tracker.NewAlreadyExistsError("sleep session", session.ID)
	}

	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

// UpdateSession replaces a stored sleep session
func (s *InMemoryStore) UpdateSession(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; !exists {
		return tracker.NewNotFoundError("sleep session", session.ID)
	}

	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

// GetSession retrieves a sleep session by ID
func (s *InMemoryStore) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, tracker.NewNotFoundError("sleep session", sessionID)
	}

	copied := *session
	return &copied, nil
}

// GetActiveSession returns the in-progress session for a baby, or nil if none
func (s *InMemoryStore) GetActiveSession(ctx context.Context, babyID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, session := range s.sessions {
		if session.BabyID == babyID && session.IsActive {
			copied := *session
			return &copied, nil
		}
	}

	return nil, nil
}

// ListSessions returns a baby's sleep sessions matching the filter, oldest first
func (s *InMemoryStore) ListSessions(ctx context.Context, babyID string, filter ListFilter) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*Session, 0)
	for _, session := range s.sessions {
		if session.BabyID != babyID {
			continue
		}
		if !filter.Matches(session) {
			continue
		}
		copied := *session
		sessions = append(sessions, &copied)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.Before(sessions[j].StartTime)
	})

	return sessions, nil
}

// DeleteSession removes a sleep session
func (s *InMemoryStore) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sessionID]; !exists {
		return tracker.NewNotFoundError("sleep session", sessionID)
	}

	delete(s.sessions, sessionID)
	return nil
}

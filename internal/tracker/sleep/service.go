package sleep

import (
	"context"
	"fmt"
	"time"

	"github.com/cradle/cradle/internal/tracker"
)

// Service implements the SessionManager interface. It is the single write
// path for sessions, which keeps the IsActive flag and EndTime in lockstep:
// a session is active exactly while its end time is unset.
type Service struct {
	store SessionStore
}

// NewService creates a new sleep session service
func NewService(store SessionStore) *Service {
	return &Service{
		store: store,
	}
}

// StartSession begins a new in-progress sleep session for a baby
func (s *Service) StartSession(ctx context.Context, req *StartSessionRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// A baby sleeps one session at a time
	active, err := s.store.GetActiveSession(ctx, req.BabyID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active session: %w", err)
	}
	if active != nil {
		return nil, tracker.NewActiveConflictError(req.BabyID, active.ID)
	}

	session := NewSession(req, time.Now())

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create sleep session: %w", err)
	}

	return session, nil
}

// EndSession completes an in-progress session, deriving its final duration
// in whole seconds from the start and end timestamps
func (s *Service) EndSession(ctx context.Context, req *EndSessionRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	session, err := s.store.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsActive {
		return nil, tracker.NewSessionStateError(session.ID, "is already completed")
	}

	end := time.Now()
	if req.EndTime != nil {
		end = *req.EndTime
	}

	if end.Before(session.StartTime) {
		return nil, tracker.NewSessionStateError(session.ID, fmt.Sprintf("end time %s is before start time %s",
			end.Format(time.RFC3339), session.StartTime.Format(time.RFC3339)))
	}

	session.EndTime = &end
	session.Duration = int(end.Sub(session.StartTime).Seconds())
	session.IsActive = false
	if req.Mood != nil {
		session.Mood = req.Mood
	}
	session.UpdatedAt = time.Now()

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to end sleep session: %w", err)
	}

	return session, nil
}

// GetSession retrieves a sleep session by ID
func (s *Service) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}
	return s.store.GetSession(ctx, sessionID)
}

// ListSessions returns a baby's sleep sessions matching the filter
func (s *Service) ListSessions(ctx context.Context, babyID string, filter ListFilter) ([]*Session, error) {
	if babyID == "" {
		return nil, fmt.Errorf("baby_id is required")
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, fmt.Errorf("type must be one of: %s, %s", TypeNap, TypeNight)
	}
	return s.store.ListSessions(ctx, babyID, filter)
}

// DeleteSession deletes a sleep session
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session_id is required")
	}

	// Check if session exists
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return err
	}

	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete sleep session: %w", err)
	}

	return nil
}

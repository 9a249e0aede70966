package sleep

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type categorizes a sleep session
type Type string

const (
	// TypeNap is a sleep session during waking hours
	TypeNap Type = "nap"
	// TypeNight is the primary overnight sleep period
	TypeNight Type = "night"
)

// IsValid checks if the sleep type is valid
func (t Type) IsValid() bool {
	return t == TypeNap || t == TypeNight
}

// DateLayout is the layout for the session's local calendar date
const DateLayout = "2006-01-02"

// Session represents one sleep episode for a tracked baby.
// EndTime is nil exactly while the session is still in progress, and
// IsActive mirrors that. Duration holds elapsed seconds and is the
// authoritative value for statistics; it is 0 until the session ends.
type Session struct {
	ID        string     `json:"id"`
	BabyID    string     `json:"baby_id"`
	UserID    string     `json:"user_id"`
	Date      string     `json:"date"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Duration  int        `json:"duration"`
	Type      Type       `json:"type"`
	IsActive  bool       `json:"is_active"`
	Notes     *string    `json:"notes,omitempty"`
	Mood      *string    `json:"mood,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// StartSessionRequest represents a request to start a new sleep session
type StartSessionRequest struct {
	BabyID    string     `json:"baby_id"`
	UserID    string     `json:"user_id"`
	Type      Type       `json:"type"`
	StartTime *time.Time `json:"start_time,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// Validate validates the start session request
func (r *StartSessionRequest) Validate() error {
	if r.BabyID == "" {
		return fmt.Errorf("baby_id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("type must be one of: %s, %s", TypeNap, TypeNight)
	}
	return nil
}

// EndSessionRequest represents a request to end an in-progress sleep session
type EndSessionRequest struct {
	SessionID string     `json:"session_id"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Mood      *string    `json:"mood,omitempty"`
}

// Validate validates the end session request
func (r *EndSessionRequest) Validate() error {
	if r.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	return nil
}

// ListFilter narrows ListSessions results. Zero values mean no filtering.
type ListFilter struct {
	Date string
	Type Type
}

// Matches reports whether a session passes the filter
func (f ListFilter) Matches(s *Session) bool {
	if f.Date != "" && s.Date != f.Date {
		return false
	}
	if f.Type != "" && s.Type != f.Type {
		return false
	}
	return true
}

// NewSession builds an in-progress session from a start request
func NewSession(req *StartSessionRequest, now time.Time) *Session {
	start := now
	if req.StartTime != nil {
		start = *req.StartTime
	}

	return &Session{
		ID:        uuid.New().String(),
		BabyID:    req.BabyID,
		UserID:    req.UserID,
		Date:      start.Local().Format(DateLayout),
		StartTime: start,
		EndTime:   nil,
		Duration:  0,
		Type:      req.Type,
		IsActive:  true,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

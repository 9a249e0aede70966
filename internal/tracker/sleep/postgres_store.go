package sleep

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/cradle/cradle/internal/tracker"
)

// PostgresStore implements SessionStore interface with PostgreSQL storage
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// SessionSchema represents the sleep_sessions table schema
type SessionSchema struct {
	bun.BaseModel `bun:"table:sleep_sessions,alias:ss"`

	ID        string     `bun:"id,pk" json:"id"`
	BabyID    string     `bun:"baby_id,notnull" json:"baby_id"`
	UserID    string     `bun:"user_id,notnull" json:"user_id"`
	Date      string     `bun:"date,notnull" json:"date"`
	StartTime time.Time  `bun:"start_time,notnull" json:"start_time"`
	EndTime   *time.Time `bun:"end_time,nullzero" json:"end_time,omitempty"`
	Duration  int        `bun:"duration,notnull,default:0" json:"duration"`
	Type      string     `bun:"type,notnull" json:"type"`
	IsActive  bool       `bun:"is_active,notnull,default:false" json:"is_active"`
	Notes     *string    `bun:"notes,nullzero" json:"notes,omitempty"`
	Mood      *string    `bun:"mood,nullzero" json:"mood,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// CreateSession creates a new sleep session
func (s *PostgresStore) CreateSession(ctx context.Context, session *Session) error {
	schema := sessionToSchema(session)

	_, err := s.db.NewInsert().
		Model(schema).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create sleep session: %w", err)
	}

	return nil
}

// UpdateSession updates a stored sleep session
func (s *PostgresStore) UpdateSession(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now()
	schema := sessionToSchema(session)

	result, err := s.db.NewUpdate().
		Model(schema).
		WherePK().
		Where("deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update sleep session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return tracker.NewNotFoundError("sleep session", session.ID)
	}

	return nil
}

// GetSession retrieves a sleep session by ID (active rows only)
func (s *PostgresStore) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	var schema SessionSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("id = ?", sessionID).
		Where("deleted_at IS NULL").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tracker.NewNotFoundErrorWithCause("sleep session", sessionID, err)
		}
		return nil, fmt.Errorf("failed to get sleep session: %w", err)
	}

	return schemaToSession(schema), nil
}

// GetActiveSession returns the in-progress session for a baby, or nil if none
func (s *PostgresStore) GetActiveSession(ctx context.Context, babyID string) (*Session, error) {
	var schema SessionSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("baby_id = ?", babyID).
		Where("is_active = TRUE").
		Where("deleted_at IS NULL").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active sleep session: %w", err)
	}

	return schemaToSession(schema), nil
}

// ListSessions returns a baby's sleep sessions matching the filter, oldest first
func (s *PostgresStore) ListSessions(ctx context.Context, babyID string, filter ListFilter) ([]*Session, error) {
	var schemas []SessionSchema

	query := s.db.NewSelect().
		Model(&schemas).
		Where("baby_id = ?", babyID).
		Where("deleted_at IS NULL")

	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}

	err := query.Order("start_time ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep sessions: %w", err)
	}

	sessions := make([]*Session, len(schemas))
	for i, schema := range schemas {
		sessions[i] = schemaToSession(schema)
	}

	return sessions, nil
}

// DeleteSession soft-deletes a sleep session by setting deleted_at timestamp
func (s *PostgresStore) DeleteSession(ctx context.Context, sessionID string) error {
	now := time.Now()

	result, err := s.db.NewUpdate().
		Model((*SessionSchema)(nil)).
		Where("id = ?", sessionID).
		Where("deleted_at IS NULL").
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete sleep session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return tracker.NewNotFoundError("sleep session", sessionID)
	}

	return nil
}

// sessionToSchema converts a session model to database schema
func sessionToSchema(session *Session) *SessionSchema {
	return &SessionSchema{
		ID:        session.ID,
		BabyID:    session.BabyID,
		UserID:    session.UserID,
		Date:      session.Date,
		StartTime: session.StartTime,
		EndTime:   session.EndTime,
		Duration:  session.Duration,
		Type:      string(session.Type),
		IsActive:  session.IsActive,
		Notes:     session.Notes,
		Mood:      session.Mood,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}

// schemaToSession converts database schema to a session model
func schemaToSession(schema SessionSchema) *Session {
	return &Session{
		ID:        schema.ID,
		BabyID:    schema.BabyID,
		UserID:    schema.UserID,
		Date:      schema.Date,
		StartTime: schema.StartTime,
		EndTime:   schema.EndTime,
		Duration:  schema.Duration,
		Type:      Type(schema.Type),
		IsActive:  schema.IsActive,
		Notes:     schema.Notes,
		Mood:      schema.Mood,
		CreatedAt: schema.CreatedAt,
		UpdatedAt: schema.UpdatedAt,
	}
}

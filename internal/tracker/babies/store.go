package babies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/cradle/cradle/internal/tracker"
)

// PostgresStore implements BabyStore interface using PostgreSQL
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL baby store
func NewPostgresStore(db *bun.DB) BabyStore {
	return &PostgresStore{db: db}
}

// CreateBaby persists a new baby profile to storage
func (s *PostgresStore) CreateBaby(ctx context.Context, baby *Baby) error {
	_, err := s.db.NewInsert().Model(baby).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create baby: %w", err)
	}
	return nil
}

// GetBaby retrieves a baby profile by ID from storage
func (s *PostgresStore) GetBaby(ctx context.Context, babyID string) (*Baby, error) {
	baby := &Baby{}
	err := s.db.NewSelect().Model(baby).Where("id = ?", babyID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tracker.NewNotFoundErrorWithCause("baby", babyID, err)
		}
		return nil, fmt.Errorf("failed to get baby: %w", err)
	}
	return baby, nil
}

// ListBabies retrieves the baby profiles owned by a user
func (s *PostgresStore) ListBabies(ctx context.Context, userID string) ([]*Baby, error) {
	var babies []*Baby
	err := s.db.NewSelect().
		Model(&babies).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list babies: %w", err)
	}
	return babies, nil
}

// DeleteBaby soft-deletes a baby profile
func (s *PostgresStore) DeleteBaby(ctx context.Context, babyID string) error {
	now := time.Now()

	result, err := s.db.NewUpdate().
		Model((*Baby)(nil)).
		Where("id = ?", babyID).
		Where("deleted_at IS NULL").
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete baby: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return tracker.NewNotFoundError("baby", babyID)
	}

	return nil
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/cradle/cradle/internal/tracker"
)

// PostgresStore implements UserStore interface with PostgreSQL storage
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// UserSchema represents the users table schema
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UUID      uuid.UUID  `bun:"uuid,pk,type:uuid,default:gen_random_uuid()" json:"uuid"`
	UserID    string     `bun:"user_id,notnull,unique" json:"user_id"`
	Name      *string    `bun:"name" json:"name,omitempty"`
	Email     string     `bun:"email,notnull,unique" json:"email"`
	Timezone  string     `bun:"timezone,notnull,default:'UTC'" json:"timezone"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// CreateUser creates a new caregiver account
func (s *PostgresStore) CreateUser(ctx context.Context, user *User) error {
	schema := userToSchema(user)

	_, err := s.db.NewInsert().
		Model(schema).
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "users_user_id_key") {
			return tracker.NewAlreadyExistsError("user", user.UserID)
		}
		if strings.Contains(err.Error(), "users_email_key") {
			return tracker.NewAlreadyExistsError("user", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUser retrieves a caregiver account by ID (active rows only)
func (s *PostgresStore) GetUser(ctx context.Context, userID string) (*User, error) {
	var schema UserSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("user_id = ?", userID).
		Where("deleted_at IS NULL").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tracker.NewNotFoundErrorWithCause("user", userID, err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return schemaToUser(schema), nil
}

// DeleteUser soft-deletes a caregiver account
func (s *PostgresStore) DeleteUser(ctx context.Context, userID string) error {
	now := time.Now()

	result, err := s.db.NewUpdate().
		Model((*UserSchema)(nil)).
		Where("user_id = ?", userID).
		Where("deleted_at IS NULL").
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return tracker.NewNotFoundError("user", userID)
	}

	return nil
}

// userToSchema converts a caregiver model to database schema
func userToSchema(user *User) *UserSchema {
	var name *string
	if user.Name != "" {
		name = &user.Name
	}

	return &UserSchema{
		UUID:      user.UUID,
		UserID:    user.UserID,
		Name:      name,
		Email:     user.Email,
		Timezone:  user.Timezone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// schemaToUser converts database schema to a caregiver model
func schemaToUser(schema UserSchema) *User {
	user := &User{
		UUID:      schema.UUID,
		UserID:    schema.UserID,
		Email:     schema.Email,
		Timezone:  schema.Timezone,
		CreatedAt: schema.CreatedAt,
		UpdatedAt: schema.UpdatedAt,
		DeletedAt: schema.DeletedAt,
	}

	if schema.Name != nil {
		user.Name = *schema.Name
	}

	return user
}

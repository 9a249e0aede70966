package babies

import (
	"fmt"
	"time"
)

// Baby represents a tracked baby profile
type Baby struct {
	ID        string     `json:"id" bun:",pk"`
	UserID    string     `json:"user_id" bun:"user_id,notnull"`
	Name      string     `json:"name" bun:"name,notnull"`
	BirthDate *string    `json:"birth_date,omitempty" bun:"birth_date,nullzero"`
	CreatedAt time.Time  `json:"created_at" bun:",default:current_timestamp"`
	UpdatedAt time.Time  `json:"updated_at" bun:",default:current_timestamp"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" bun:"deleted_at,soft_delete,nullzero"`
}

// RegisterBabyRequest represents a request to register a new baby
type RegisterBabyRequest struct {
	BabyID    string  `json:"baby_id"`
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	BirthDate *string `json:"birth_date,omitempty"`
}

// Validate validates the register baby request
func (r *RegisterBabyRequest) Validate() error {
	if r.BabyID == "" {
		return fmt.Errorf("baby_id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.BirthDate != nil {
		if _, err := time.Parse("2006-01-02", *r.BirthDate); err != nil {
			return fmt.Errorf("birth_date must be in YYYY-MM-DD format")
		}
	}
	return nil
}

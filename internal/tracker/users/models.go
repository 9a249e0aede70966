package users

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimezone is assigned to caregivers who do not name one.
const DefaultTimezone = "UTC"

// User represents a caregiver account. Timezone is an IANA zone name and
// determines the local calendar date used when summarizing a baby's sleep.
type User struct {
	UUID      uuid.UUID  `json:"uuid"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email"`
	Timezone  string     `json:"timezone"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Location resolves the caregiver's timezone, falling back to UTC when the
// stored zone name cannot be loaded.
func (u *User) Location() *time.Location {
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CreateUserRequest represents the request to register a caregiver account
type CreateUserRequest struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Timezone string `json:"timezone,omitempty"`
}

// Validate validates the create user request
func (r *CreateUserRequest) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("email %q is not a valid address", r.Email)
	}
	if r.Timezone != "" {
		if _, err := time.LoadLocation(r.Timezone); err != nil {
			return fmt.Errorf("timezone %q is not a valid IANA zone name", r.Timezone)
		}
	}
	return nil
}

// NewUser builds a caregiver account from a validated request, assigning a
// fresh UUID and the default timezone when none was given.
func NewUser(req *CreateUserRequest, now time.Time) *User {
	tz := req.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	return &User{
		UUID:      uuid.New(),
		UserID:    req.UserID,
		Name:      req.Name,
		Email:     req.Email,
		Timezone:  tz,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

package tracker

import "fmt"

// Error types shared by the tracker resource packages. Handlers classify
// them with errors.As to pick response codes, so services must return (or
// wrap with %w) these rather than bare strings.

// NotFoundError represents a lookup for a resource that does not exist
type NotFoundError struct {
	Resource string
	ID       string
	Cause    error
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s with id %s not found (caused by: %v)", e.Resource, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s with id %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates an error for a missing resource
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewNotFoundErrorWithCause creates an error for a missing resource with a cause
func NewNotFoundErrorWithCause(resource, id string, cause error) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
		Cause:    cause,
	}
}

// AlreadyExistsError represents an attempt to create a resource that exists
type AlreadyExistsError struct {
	Resource string
	ID       string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with id %s already exists", e.Resource, e.ID)
}

// NewAlreadyExistsError creates an error for a duplicate resource
func NewAlreadyExistsError(resource, id string) *AlreadyExistsError {
	return &AlreadyExistsError{
		Resource: resource,
		ID:       id,
	}
}

// ActiveConflictError represents an attempt to start a sleep session while
// the baby already has one in progress
type ActiveConflictError struct {
	BabyID    string
	SessionID string
}

func (e *ActiveConflictError) Error() string {
	return fmt.Sprintf("baby %s already has an active sleep session (%s)", e.BabyID, e.SessionID)
}

// NewActiveConflictError creates an error for a second in-progress session
func NewActiveConflictError(babyID, sessionID string) *ActiveConflictError {
	return &ActiveConflictError{
		BabyID:    babyID,
		SessionID: sessionID,
	}
}

// SessionStateError represents an operation that is invalid for the sleep
// session's current state
type SessionStateError struct {
	SessionID string
	Message   string
}

func (e *SessionStateError) Error() string {
	return fmt.Sprintf("sleep session %s %s", e.SessionID, e.Message)
}

// NewSessionStateError creates an error for an invalid session-state transition
func NewSessionStateError(sessionID, message string) *SessionStateError {
	return &SessionStateError{
		SessionID: sessionID,
		Message:   message,
	}
}

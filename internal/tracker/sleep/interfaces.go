package sleep

import "context"

// SessionManager defines the interface for sleep session operations
type SessionManager interface {
	StartSession(ctx context.Context, req *StartSessionRequest) (*Session, error)
	EndSession(ctx context.Context, req *EndSessionRequest) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	ListSessions(ctx context.Context, babyID string, filter ListFilter) ([]*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionStore defines the interface for sleep session storage operations
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	UpdateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	GetActiveSession(ctx context.Context, babyID string) (*Session, error)
	ListSessions(ctx context.Context, babyID string, filter ListFilter) ([]*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

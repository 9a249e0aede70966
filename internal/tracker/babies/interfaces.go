package babies

import "context"

// BabyManager defines the interface for baby profile operations
type BabyManager interface {
	RegisterBaby(ctx context.Context, req *RegisterBabyRequest) (*Baby, error)
	GetBaby(ctx context.Context, babyID string) (*Baby, error)
	ListBabies(ctx context.Context, userID string) ([]*Baby, error)
	DeleteBaby(ctx context.Context, babyID string) error
}

// BabyStore defines the interface for baby storage operations
type BabyStore interface {
	CreateBaby(ctx context.Context, baby *Baby) error
	GetBaby(ctx context.Context, babyID string) (*Baby, error)
	ListBabies(ctx context.Context, userID string) ([]*Baby, error)
	DeleteBaby(ctx context.Context, babyID string) error
}

package babies

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cradle/cradle/internal/tracker"
)

// memStore is a map-backed BabyStore for tests
type memStore struct {
	mu     sync.RWMutex
	babies map[string]*Baby
}

func newMemStore() *memStore {
	return &memStore{babies: make(map[string]*Baby)}
}

func (s *memStore) CreateBaby(ctx context.Context, baby *Baby) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.babies[baby.ID]; exists {
		return tracker.NewAlreadyExistsError("baby", baby.ID)
	}
	s.babies[baby.ID] = baby
	return nil
}

func (s *memStore) GetBaby(ctx context.Context, babyID string) (*Baby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	baby, exists := s.babies[babyID]
	if !exists {
		return nil, tracker.NewNotFoundError("baby", babyID)
	}
	return baby, nil
}

func (s *memStore) ListBabies(ctx context.Context, userID string) ([]*Baby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Baby, 0)
	for _, baby := range s.babies {
		if baby.UserID == userID {
			result = append(result, baby)
		}
	}
	return result, nil
}

func (s *memStore) DeleteBaby(ctx context.Context, babyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.babies[babyID]; !exists {
		return tracker.NewNotFoundError("baby", babyID)
	}
	delete(s.babies, babyID)
	return nil
}

func TestBabyService(t *testing.T) {
	ctx := context.Background()

	t.Run("RegisterAndGet", func(t *testing.T) {
		service := NewService(newMemStore())

		birthDate := "2024-11-02"
		baby, err := service.RegisterBaby(ctx, &RegisterBabyRequest{
			BabyID:    "baby-1",
			UserID:    "user-1",
			Name:      "Maya",
			BirthDate: &birthDate,
		})
		require.NoError(t, err)
		assert.Equal(t, "Maya", baby.Name)

		got, err := service.GetBaby(ctx, "baby-1")
		require.NoError(t, err)
		assert.Equal(t, baby.ID, got.ID)
	})

	t.Run("RegisterValidation", func(t *testing.T) {
		service := NewService(newMemStore())

		_, err := service.RegisterBaby(ctx, &RegisterBabyRequest{UserID: "user-1", Name: "Maya"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "baby_id is required")

		badDate := "02/11/2024"
		_, err = service.RegisterBaby(ctx, &RegisterBabyRequest{
			BabyID:    "baby-1",
			UserID:    "user-1",
			Name:      "Maya",
			BirthDate: &badDate,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "YYYY-MM-DD")
	})

	t.Run("DuplicateRejected", func(t *testing.T) {
		service := NewService(newMemStore())

		req := &RegisterBabyRequest{BabyID: "baby-1", UserID: "user-1", Name: "Maya"}
		_, err := service.RegisterBaby(ctx, req)
		require.NoError(t, err)

		_, err = service.RegisterBaby(ctx, req)
		require.Error(t, err)

		var exists *tracker.AlreadyExistsError
		require.True(t, errors.As(err, &exists))
		assert.Equal(t, "baby-1", exists.ID)
	})

	t.Run("ListByUser", func(t *testing.T) {
		service := NewService(newMemStore())

		_, err := service.RegisterBaby(ctx, &RegisterBabyRequest{BabyID: "baby-1", UserID: "user-1", Name: "Maya"})
		require.NoError(t, err)
		_, err = service.RegisterBaby(ctx, &RegisterBabyRequest{BabyID: "baby-2", UserID: "user-1", Name: "Theo"})
		require.NoError(t, err)
		_, err = service.RegisterBaby(ctx, &RegisterBabyRequest{BabyID: "baby-3", UserID: "user-2", Name: "Iris"})
		require.NoError(t, err)

		mine, err := service.ListBabies(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, mine, 2)
	})

	t.Run("Delete", func(t *testing.T) {
		service := NewService(newMemStore())

		_, err := service.RegisterBaby(ctx, &RegisterBabyRequest{BabyID: "baby-1", UserID: "user-1", Name: "Maya"})
		require.NoError(t, err)

		require.NoError(t, service.DeleteBaby(ctx, "baby-1"))

		_, err = service.GetBaby(ctx, "baby-1")
		require.Error(t, err)

		var notFound *tracker.NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "baby", notFound.Resource)
	})
}

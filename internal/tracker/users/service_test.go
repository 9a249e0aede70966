package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cradle/cradle/internal/tracker"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		service := NewService(NewInMemoryStore())

		user, err := service.CreateUser(ctx, &CreateUserRequest{
			UserID:   "user-1",
			Name:     "Alex",
			Email:    "alex@example.com",
			Timezone: "Europe/Berlin",
		})
		require.NoError(t, err)

		assert.NotEqual(t, "", user.UUID.String())
		assert.Equal(t, "user-1", user.UserID)
		assert.Equal(t, "alex@example.com", user.Email)
		assert.Equal(t, "Europe/Berlin", user.Timezone)

		got, err := service.GetUser(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, user.UUID, got.UUID)
		assert.Equal(t, "Alex", got.Name)
	})

	t.Run("TimezoneDefaultsToUTC", func(t *testing.T) {
		service := NewService(NewInMemoryStore())

		user, err := service.CreateUser(ctx, &CreateUserRequest{
			UserID: "user-1",
			Email:  "alex@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, DefaultTimezone, user.Timezone)
		assert.Equal(t, "UTC", user.Location().String())
	})

	t.Run("CreateValidation", func(t *testing.T) {
		service := NewService(NewInMemoryStore())

		_, err := service.CreateUser(ctx, &CreateUserRequest{Email: "alex@example.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "user_id is required")

		_, err = service.CreateUser(ctx, &CreateUserRequest{UserID: "user-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email is required")

		_, err = service.CreateUser(ctx, &CreateUserRequest{UserID: "user-1", Email: "not-an-address"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid address")

		_, err = service.CreateUser(ctx, &CreateUserRequest{
			UserID:   "user-1",
			Email:    "alex@example.com",
			Timezone: "Mars/Olympus",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "IANA zone name")
	})

	t.Run("DuplicateRejected", func(t *testing.T) {
		service := NewService(NewInMemoryStore())

		_, err := service.CreateUser(ctx, &CreateUserRequest{UserID: "user-1", Email: "alex@example.com"})
		require.NoError(t, err)

		_, err = service.CreateUser(ctx, &CreateUserRequest{UserID: "user-1", Email: "other@example.com"})
		require.Error(t, err)

		var exists *tracker.AlreadyExistsError
		require.True(t, errors.As(err, &exists))
		assert.Equal(t, "user-1", exists.ID)

		_, err = service.CreateUser(ctx, &CreateUserRequest{UserID: "user-2", Email: "alex@example.com"})
		require.Error(t, err)
		require.True(t, errors.As(err, &exists))
	})

	t.Run("GetUnknownUser", func(t *testing.T) {
		service := NewService(NewInMemoryStore())

		_, err := service.GetUser(ctx, "missing")
		require.Error(t, err)

		var notFound *tracker.NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "user", notFound.Resource)
	})

	t.Run("Delete", func(t *testing.T) {
		service := NewService(NewInMemoryStore())

		_, err := service.CreateUser(ctx, &CreateUserRequest{UserID: "user-1", Email: "alex@example.com"})
		require.NoError(t, err)

		require.NoError(t, service.DeleteUser(ctx, "user-1"))

		_, err = service.GetUser(ctx, "user-1")
		require.Error(t, err)

		err = service.DeleteUser(ctx, "user-1")
		var notFound *tracker.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})
}

func TestUserLocation(t *testing.T) {
	t.Run("InvalidZoneFallsBackToUTC", func(t *testing.T) {
		user := &User{Timezone: "nowhere"}
		assert.Equal(t, "UTC", user.Location().String())
	})
}

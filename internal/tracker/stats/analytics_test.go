package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cradle/cradle/internal/tracker/sleep"
)

func completedSession(babyID string, typ sleep.Type, durationSeconds int) *sleep.Session {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(durationSeconds) * time.Second)
	return &sleep.Session{
		ID:        uuid.New().String(),
		BabyID:    babyID,
		UserID:    "user-1",
		Date:      start.Format(sleep.DateLayout),
		StartTime: start,
		EndTime:   &end,
		Duration:  durationSeconds,
		Type:      typ,
		IsActive:  false,
		CreatedAt: start,
		UpdatedAt: end,
	}
}

func activeSession(babyID string, typ sleep.Type) *sleep.Session {
	start := time.Date(2025, 3, 14, 13, 0, 0, 0, time.UTC)
	return &sleep.Session{
		ID:        uuid.New().String(),
		BabyID:    babyID,
		UserID:    "user-1",
		Date:      start.Format(sleep.DateLayout),
		StartTime: start,
		Type:      typ,
		IsActive:  true,
		CreatedAt: start,
		UpdatedAt: start,
	}
}

func TestCalculateSleepQuality(t *testing.T) {
	t.Run("EmptyInput", func(t *testing.T) {
		quality := CalculateSleepQuality(nil, sleep.TypeNap)
		assert.Equal(t, 0, quality.Count)
		assert.Equal(t, 0, quality.TotalDuration)
		assert.Equal(t, 0, quality.AverageDuration)
	})

	t.Run("FiltersByType", func(t *testing.T) {
		sessions := []*sleep.Session{
			completedSession("baby-1", sleep.TypeNap, 3600),
			completedSession("baby-1", sleep.TypeNap, 5400),
			completedSession("baby-1", sleep.TypeNight, 28800),
		}

		naps := CalculateSleepQuality(sessions, sleep.TypeNap)
		assert.Equal(t, 2, naps.Count)
		assert.Equal(t, 9000, naps.TotalDuration)
		assert.Equal(t, 4500, naps.AverageDuration)

		night := CalculateSleepQuality(sessions, sleep.TypeNight)
		assert.Equal(t, 1, night.Count)
		assert.Equal(t, 28800, night.TotalDuration)
		assert.Equal(t, 28800, night.AverageDuration)
	})

	t.Run("NightAverage", func(t *testing.T) {
		sessions := []*sleep.Session{
			completedSession("baby-1", sleep.TypeNight, 28800),
			completedSession("baby-1", sleep.TypeNight, 32400),
		}

		night := CalculateSleepQuality(sessions, sleep.TypeNight)
		assert.Equal(t, 2, night.Count)
		assert.Equal(t, 61200, night.TotalDuration)
		assert.Equal(t, 30600, night.AverageDuration)
	})

	t.Run("ActiveSessionsExcluded", func(t *testing.T) {
		sessions := []*sleep.Session{
			completedSession("baby-1", sleep.TypeNap, 3600),
			activeSession("baby-1", sleep.TypeNap),
			activeSession("baby-1", sleep.TypeNight),
		}

		naps := CalculateSleepQuality(sessions, sleep.TypeNap)
		assert.Equal(t, 1, naps.Count)
		assert.Equal(t, 3600, naps.TotalDuration)

		// Only an active night session exists, so night stats stay zeroed
		night := CalculateSleepQuality(sessions, sleep.TypeNight)
		assert.Equal(t, 0, night.Count)
		assert.Equal(t, 0, night.TotalDuration)
		assert.Equal(t, 0, night.AverageDuration)
	})

	t.Run("UnrecognizedTypeMatchesNothing", func(t *testing.T) {
		sessions := []*sleep.Session{
			completedSession("baby-1", sleep.TypeNap, 3600),
			completedSession("baby-1", sleep.TypeNight, 28800),
		}

		quality := CalculateSleepQuality(sessions, sleep.Type("siesta"))
		assert.Equal(t, QualityStats{}, quality)
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		session := completedSession("baby-1", sleep.TypeNap, 3600)
		before := *session

		CalculateSleepQuality([]*sleep.Session{session}, sleep.TypeNap)
		assert.Equal(t, before, *session)
	})

	t.Run("AverageIsIntegerDivision", func(t *testing.T) {
		sessions := []*sleep.Session{
			completedSession("baby-1", sleep.TypeNap, 100),
			completedSession("baby-1", sleep.TypeNap, 101),
		}

		naps := CalculateSleepQuality(sessions, sleep.TypeNap)
		assert.Equal(t, 201, naps.TotalDuration)
		assert.Equal(t, 100, naps.AverageDuration)
	})
}

func TestStatsService(t *testing.T) {
	ctx := context.Background()

	newStoreWith := func(t *testing.T, sessions ...*sleep.Session) *sleep.InMemoryStore {
		store := sleep.NewInMemoryStore()
		for _, session := range sessions {
			require.NoError(t, store.CreateSession(ctx, session))
		}
		return store
	}

	t.Run("QualityReportFormatsDurations", func(t *testing.T) {
		store := newStoreWith(t,
			completedSession("baby-1", sleep.TypeNap, 3600),
			completedSession("baby-1", sleep.TypeNap, 5400),
		)
		service := NewService(store)

		report, err := service.Quality(ctx, "baby-1", "", sleep.TypeNap)
		require.NoError(t, err)

		assert.Equal(t, 2, report.Count)
		assert.Equal(t, 9000, report.TotalDuration)
		assert.Equal(t, 4500, report.AverageDuration)
		assert.Equal(t, "2h 30m", report.TotalFormatted)
		assert.Equal(t, "1h 15m", report.AverageFormatted)
	})

	t.Run("QualityRejectsUnknownType", func(t *testing.T) {
		service := NewService(sleep.NewInMemoryStore())

		_, err := service.Quality(ctx, "baby-1", "", sleep.Type("siesta"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type must be")
	})

	t.Run("QualityFiltersByDate", func(t *testing.T) {
		onDate := completedSession("baby-1", sleep.TypeNap, 3600)
		offDate := completedSession("baby-1", sleep.TypeNap, 5400)
		offDate.Date = "2025-03-15"
		store := newStoreWith(t, onDate, offDate)
		service := NewService(store)

		report, err := service.Quality(ctx, "baby-1", "2025-03-14", sleep.TypeNap)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Count)
		assert.Equal(t, 3600, report.TotalDuration)
	})

	t.Run("DailySummary", func(t *testing.T) {
		store := newStoreWith(t,
			completedSession("baby-1", sleep.TypeNap, 3600),
			completedSession("baby-1", sleep.TypeNap, 5400),
			completedSession("baby-1", sleep.TypeNight, 28800),
			activeSession("baby-1", sleep.TypeNap),
		)
		service := NewService(store)

		summary, err := service.DailySummary(ctx, "baby-1", "2025-03-14")
		require.NoError(t, err)

		assert.Equal(t, "baby-1", summary.BabyID)
		assert.Equal(t, 2, summary.Naps.Count)
		assert.Equal(t, 9000, summary.Naps.TotalDuration)
		assert.Equal(t, 1, summary.NightSleep.Count)
		assert.Equal(t, 28800, summary.NightSleep.TotalDuration)
		assert.Equal(t, 37800, summary.TotalDuration)
		assert.Equal(t, "10h 30m", summary.TotalFormatted)
		assert.Equal(t, 28800, summary.LongestSession)
		assert.Equal(t, 1, summary.ActiveSessions)
	})

	t.Run("DailySummaryEmptyDay", func(t *testing.T) {
		service := NewService(sleep.NewInMemoryStore())

		summary, err := service.DailySummary(ctx, "baby-1", "2025-03-14")
		require.NoError(t, err)
		require.NotNil(t, summary)

		assert.Equal(t, QualityStats{}, summary.Naps)
		assert.Equal(t, QualityStats{}, summary.NightSleep)
		assert.Equal(t, 0, summary.TotalDuration)
		assert.Equal(t, "0m", summary.TotalFormatted)
		assert.Equal(t, 0, summary.ActiveSessions)
	})
}

package stats

import (
	"context"
	"fmt"

	"github.com/cradle/cradle/internal/tracker/sleep"
)

// CalculateSleepQuality computes summary statistics over the completed
// sessions of the given type. A session counts if and only if its type
// matches and it is not active; an in-progress session has no final
// duration yet and is always excluded. With no matching sessions every
// field is 0 — the average never divides by zero.
func CalculateSleepQuality(sessions []*sleep.Session, typ sleep.Type) QualityStats {
	stats := QualityStats{}

	for _, session := range sessions {
		if session.Type != typ || session.IsActive {
			continue
		}
		stats.Count++
		stats.TotalDuration += session.Duration
	}

	if stats.Count > 0 {
		stats.AverageDuration = stats.TotalDuration / stats.Count
	}

	return stats
}

// qualityReport attaches display strings to quality stats
func qualityReport(stats QualityStats) QualityReport {
	return QualityReport{
		QualityStats:     stats,
		TotalFormatted:   FormatSleepDuration(stats.TotalDuration),
		AverageFormatted: FormatSleepDuration(stats.AverageDuration),
	}
}

// Service computes sleep statistics over stored sessions
type Service struct {
	store sleep.SessionStore
}

// NewService creates a new stats service
func NewService(store sleep.SessionStore) *Service {
	return &Service{
		store: store,
	}
}

// Quality returns quality statistics for one sleep type, optionally
// restricted to a single calendar date
func (s *Service) Quality(ctx context.Context, babyID string, date string, typ sleep.Type) (*QualityReport, error) {
	if babyID == "" {
		return nil, fmt.Errorf("baby_id is required")
	}
	if !typ.IsValid() {
		return nil, fmt.Errorf("type must be one of: %s, %s", sleep.TypeNap, sleep.TypeNight)
	}

	sessions, err := s.store.ListSessions(ctx, babyID, sleep.ListFilter{Date: date})
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep sessions: %w", err)
	}

	report := qualityReport(CalculateSleepQuality(sessions, typ))
	return &report, nil
}

// DailySummary aggregates a baby's sleep for one calendar date. A day with
// no recorded sessions yields a zeroed summary, never nil.
func (s *Service) DailySummary(ctx context.Context, babyID string, date string) (*DailySummary, error) {
	if babyID == "" {
		return nil, fmt.Errorf("baby_id is required")
	}
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}

	sessions, err := s.store.ListSessions(ctx, babyID, sleep.ListFilter{Date: date})
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep sessions: %w", err)
	}

	summary := &DailySummary{
		BabyID:     babyID,
		Date:       date,
		Naps:       CalculateSleepQuality(sessions, sleep.TypeNap),
		NightSleep: CalculateSleepQuality(sessions, sleep.TypeNight),
	}

	for _, session := range sessions {
		if session.IsActive {
			summary.ActiveSessions++
			continue
		}
		if session.Duration > summary.LongestSession {
			summary.LongestSession = session.Duration
		}
	}

	summary.TotalDuration = summary.Naps.TotalDuration + summary.NightSleep.TotalDuration
	summary.TotalFormatted = FormatSleepDuration(summary.TotalDuration)

	return summary, nil
}

package app

import (
	"context"
	"time"

	"kittyfit/internal/domain"
)

// MetricsService evaluates the derived metrics over a user's log history.
// The repository does the owner filtering; the metrics themselves are pure
// functions of the returned collection.
type MetricsService struct {
	logs domain.WorkoutLogRepository
}

// NewMetricsService creates a MetricsService backed by the given repository.
func NewMetricsService(logs domain.WorkoutLogRepository) *MetricsService {
	return &MetricsService{logs: logs}
}

// Streak returns the user's consecutive-day workout streak as of now.
func (s *MetricsService) Streak(ctx context.Context, userID string) (int, error) {
	list, err := s.logs.ListForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.Streak(list, time.Now()), nil
}

// Health returns the user's kitty health report as of now.
func (s *MetricsService) Health(ctx context.Context, userID string) (domain.HealthReport, error) {
	list, err := s.logs.ListForUser(ctx, userID)
	if err != nil {
		return domain.HealthReport{}, err
	}
	return domain.Health(list, time.Now()), nil
}

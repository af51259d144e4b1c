package app

import (
	"context"
	"errors"
	"time"

	"kittyfit/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrLogNotFound indicates the workout log does not exist or belongs to
	// someone else. The two cases are deliberately indistinguishable.
	ErrLogNotFound = errors.New("workout log not found")
	// ErrPlanNotFound indicates the workout plan does not exist or belongs
	// to someone else.
	ErrPlanNotFound = errors.New("workout plan not found")
	// ErrEmptyWorkout indicates a log with no recorded exercises.
	ErrEmptyWorkout = errors.New("workout log must contain at least one exercise result")
)

// WorkoutLogService encapsulates workout-log use cases. Logs with an empty
// owner are legacy records readable (and editable) by everyone.
type WorkoutLogService struct {
	logs  domain.WorkoutLogRepository
	plans domain.WorkoutPlanRepository
}

// NewWorkoutLogService creates a WorkoutLogService backed by the given
// repositories.
func NewWorkoutLogService(logs domain.WorkoutLogRepository, plans domain.WorkoutPlanRepository) *WorkoutLogService {
	return &WorkoutLogService{logs: logs, plans: plans}
}

// Create validates and stores a new workout log owned by userID. A zero
// date defaults to now.
func (s *WorkoutLogService) Create(ctx context.Context, userID, workoutID string, date time.Time, results []domain.ExerciseResult) (*domain.WorkoutLog, error) {
	if len(results) == 0 {
		return nil, ErrEmptyWorkout
	}
	if date.IsZero() {
		date = time.Now()
	}

	l := &domain.WorkoutLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		WorkoutID: workoutID,
		Date:      date,
		Results:   results,
	}
	if err := s.logs.Add(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Get returns a log visible to userID: their own or a legacy unowned one.
func (s *WorkoutLogService) Get(ctx context.Context, userID, id string) (*domain.WorkoutLog, error) {
	l, err := s.logs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil || !visibleTo(l, userID) {
		return nil, ErrLogNotFound
	}
	return l, nil
}

// Update replaces a log's workout reference, date, and results wholesale.
// Ownership never changes on edit.
func (s *WorkoutLogService) Update(ctx context.Context, userID, id, workoutID string, date time.Time, results []domain.ExerciseResult) (*domain.WorkoutLog, error) {
	if len(results) == 0 {
		return nil, ErrEmptyWorkout
	}

	l, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	l.WorkoutID = workoutID
	if !date.IsZero() {
		l.Date = date
	}
	l.Results = results

	if err := s.logs.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a log visible to userID.
func (s *WorkoutLogService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.logs.Delete(ctx, id)
}

// List returns the user's logs plus legacy unowned ones.
func (s *WorkoutLogService) List(ctx context.Context, userID string) ([]domain.WorkoutLog, error) {
	return s.logs.ListForUser(ctx, userID)
}

// CreatePlan stores a new named workout plan for userID.
func (s *WorkoutLogService) CreatePlan(ctx context.Context, userID, name string, exercises []string) (*domain.WorkoutPlan, error) {
	if name == "" {
		return nil, errors.New("plan name must not be empty")
	}

	p := &domain.WorkoutPlan{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Exercises: exercises,
		CreatedAt: time.Now(),
	}
	if err := s.plans.Add(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlans returns the user's plans plus legacy unowned ones.
func (s *WorkoutLogService) ListPlans(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	return s.plans.ListForUser(ctx, userID)
}

// DeletePlan removes a plan visible to userID.
func (s *WorkoutLogService) DeletePlan(ctx context.Context, userID, id string) error {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil || (p.UserID != "" && p.UserID != userID) {
		return ErrPlanNotFound
	}
	return s.plans.Delete(ctx, id)
}

func visibleTo(l *domain.WorkoutLog, userID string) bool {
	return l.UserID == "" || l.UserID == userID
}

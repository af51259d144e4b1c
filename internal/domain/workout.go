package domain

import (
	"context"
	"time"
)

// SetEntry is one set performed within an exercise.
type SetEntry struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// ExerciseResult is the ordered set list recorded for one exercise.
type ExerciseResult struct {
	ExerciseName string     `json:"exerciseName"`
	Sets         []SetEntry `json:"sets"`
}

// WorkoutLog is one recorded workout. Logs are immutable once written except
// for explicit edit and delete. A log with an empty UserID is a legacy,
// unowned record and is visible to every user; this is a compatibility rule,
// not a security boundary.
type WorkoutLog struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	WorkoutID string           `json:"workoutId"`
	Date      time.Time        `json:"date"`
	Results   []ExerciseResult `json:"results"`
}

// WorkoutPlan is a named exercise list users log workouts against.
type WorkoutPlan struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Exercises []string  `json:"exercises"`
	CreatedAt time.Time `json:"createdAt"`
}

// WorkoutLogRepository is the port for workout-log persistence.
type WorkoutLogRepository interface {
	Add(ctx context.Context, l *WorkoutLog) error
	// GetByID returns the log, or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*WorkoutLog, error)
	Update(ctx context.Context, l *WorkoutLog) error
	Delete(ctx context.Context, id string) error
	// ListForUser returns the user's logs plus any legacy unowned logs.
	ListForUser(ctx context.Context, userID string) ([]WorkoutLog, error)
}

// WorkoutPlanRepository is the port for workout-plan persistence.
type WorkoutPlanRepository interface {
	Add(ctx context.Context, p *WorkoutPlan) error
	GetByID(ctx context.Context, id string) (*WorkoutPlan, error)
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]WorkoutPlan, error)
}

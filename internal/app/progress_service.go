package app

import (
	"context"
	"errors"

	"kittyfit/internal/domain"
	"kittyfit/internal/logger"
)

// ErrNoActiveUser indicates a progression operation with nobody signed in.
var ErrNoActiveUser = errors.New("no active user")

// Awards per logged workout.
const (
	experiencePerWorkout = 50
	coinsPerWorkout      = 10
)

// ProgressService advances the active user's progression fields. The
// profile is replaced wholesale on every award, both server-side and in the
// session store.
type ProgressService struct {
	profiles domain.ProfileRepository
	sessions *SessionStore
	log      *logger.Logger
}

// NewProgressService creates a ProgressService.
func NewProgressService(profiles domain.ProfileRepository, sessions *SessionStore, log *logger.Logger) *ProgressService {
	return &ProgressService{profiles: profiles, sessions: sessions, log: log}
}

// AwardWorkout grants the fixed experience and coin award for one logged
// workout and recomputes the level. Returns the updated profile.
func (s *ProgressService) AwardWorkout(ctx context.Context) (*domain.UserProfile, error) {
	state := s.sessions.State()
	if state.User == nil {
		return nil, ErrNoActiveUser
	}

	updated := *state.User
	updated.Experience += experiencePerWorkout
	updated.Coins += coinsPerWorkout
	if lvl := domain.LevelForExperience(updated.Experience); lvl > updated.Level {
		s.log.Info("kitty leveled up", "userId", updated.ID, "level", lvl)
		updated.Level = lvl
	}

	if err := s.profiles.Save(ctx, &updated); err != nil {
		return nil, err
	}
	s.sessions.SetUser(ctx, &updated)
	return &updated, nil
}

package adapthttp

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"kittyfit/internal/app"
	"kittyfit/internal/domain"
)

type logRequest struct {
	WorkoutID string                  `json:"workoutId"`
	Date      time.Time               `json:"date"`
	Results   []domain.ExerciseResult `json:"results"`
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		items, err := s.workouts.List(ctx, user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body logRequest
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		l, err := s.workouts.Create(ctx, user.ID, body.WorkoutID, body.Date, body.Results)
		if errors.Is(err, app.ErrEmptyWorkout) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		// Logging a workout also advances the kitty. Award failures leave a
		// valid log behind, so they degrade to a warning.
		profile, err := s.progress.AwardWorkout(ctx)
		if err != nil {
			s.log.Warn("failed to award workout progress", "error", err, "logId", l.ID)
			profile = user
		}

		writeJSON(w, http.StatusCreated, map[string]any{"log": l, "user": profile})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogByID(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/logs/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		l, err := s.workouts.Get(ctx, user.ID, id)
		if errors.Is(err, app.ErrLogNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, l)

	case http.MethodPut:
		var body logRequest
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		l, err := s.workouts.Update(ctx, user.ID, id, body.WorkoutID, body.Date, body.Results)
		switch {
		case errors.Is(err, app.ErrLogNotFound):
			writeError(w, http.StatusNotFound, err)
			return
		case errors.Is(err, app.ErrEmptyWorkout):
			writeError(w, http.StatusBadRequest, err)
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, l)

	case http.MethodDelete:
		err := s.workouts.Delete(ctx, user.ID, id)
		if errors.Is(err, app.ErrLogNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		items, err := s.workouts.ListPlans(ctx, user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body struct {
			Name      string   `json:"name"`
			Exercises []string `json:"exercises"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		p, err := s.workouts.CreatePlan(ctx, user.ID, body.Name, body.Exercises)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePlanByID(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/plans/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	err := s.workouts.DeletePlan(r.Context(), user.ID, id)
	if errors.Is(err, app.ErrPlanNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

package adapthttp

import (
	"errors"
	"net/http"

	"kittyfit/internal/app"
)

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.sessions.State())
}

func (s *Server) handleOnboardingComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.sessions.CompleteOnboarding(r.Context())
	writeJSON(w, http.StatusOK, s.sessions.State())
}

// handleGuard evaluates the redirect rules for the segment the shell is
// currently on. The delay is reported alongside so the shell can apply it
// before navigating.
func (s *Server) handleGuard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	segment := app.Segment(r.URL.Query().Get("segment"))
	if !app.KnownSegment(segment) {
		writeError(w, http.StatusBadRequest, errors.New("unknown segment"))
		return
	}

	decision := s.guard.Decide(segment)
	writeJSON(w, http.StatusOK, map[string]any{
		"redirect": decision.Redirect,
		"target":   decision.Target,
		"delayMs":  s.guard.Delay().Milliseconds(),
	})
}

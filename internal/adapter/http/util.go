package adapthttp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"kittyfit/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// currentUser returns the active user, writing a 401 when nobody is signed
// in or the session is still loading.
func (s *Server) currentUser(w http.ResponseWriter) (*domain.UserProfile, bool) {
	state := s.sessions.State()
	if state.Loading || state.User == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "not signed in"})
		return nil, false
	}
	return state.User, true
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

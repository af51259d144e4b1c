// Package app holds the application services and business logic.
package app

import (
	"context"
	"sync"

	"kittyfit/internal/domain"
	"kittyfit/internal/logger"
)

// SessionStore is the single source of truth for who is using the app right
// now and whether they have finished onboarding. It reconciles two
// asynchronous sources at startup: the local cache (authoritative if
// present, for latency) and the identity provider.
//
// The in-memory state is the contract; cache persistence is best-effort.
// Concurrent SetUser calls are last-write-wins and persistence writes are
// not ordered relative to each other.
type SessionStore struct {
	cache    domain.Cache
	identity domain.IdentityProvider
	log      *logger.Logger

	mu         sync.Mutex
	user       *domain.UserProfile
	loading    bool
	firstLogin bool
	started    bool
	listeners  []func(domain.SessionState)
}

// NewSessionStore creates a SessionStore in the loading state. Call Start
// once before trusting State.
func NewSessionStore(cache domain.Cache, identity domain.IdentityProvider, log *logger.Logger) *SessionStore {
	return &SessionStore{
		cache:    cache,
		identity: identity,
		log:      log,
		loading:  true,
	}
}

// State returns a snapshot of the observable session state.
func (s *SessionStore) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *SessionStore) stateLocked() domain.SessionState {
	return domain.SessionState{
		User:         s.user,
		Loading:      s.loading,
		IsFirstLogin: s.firstLogin,
	}
}

// OnChange registers a listener invoked after every state change. Listeners
// run synchronously on the mutating goroutine and must not call back into
// the store.
func (s *SessionStore) OnChange(fn func(domain.SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *SessionStore) notify(st domain.SessionState) {
	s.mu.Lock()
	listeners := make([]func(domain.SessionState), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(st)
	}
}

// Start runs the startup reconciliation exactly once: adopt the cached
// profile if present, otherwise ask the identity provider, otherwise stay
// signed out. Loading flips to false exactly once, in every branch,
// including failures. Subsequent calls are no-ops.
func (s *SessionStore) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	user := s.readCachedProfile(ctx)
	if user == nil {
		resolved, err := s.identity.CurrentUser(ctx)
		if err != nil {
			s.log.Warn("identity lookup failed, staying signed out", "error", err)
		} else if resolved != nil {
			user = resolved
			s.persistProfile(ctx, user)
		}
	}

	firstLogin := false
	if user != nil {
		firstLogin = s.computeFirstLogin(ctx)
	}

	s.mu.Lock()
	s.user = user
	s.firstLogin = firstLogin
	s.loading = false
	st := s.stateLocked()
	s.mu.Unlock()

	s.notify(st)
}

// SetUser replaces the active user. The in-memory update is synchronous;
// persistence to the cache happens in the background and its failures are
// logged, never surfaced. A nil profile removes the cache entry and leaves
// IsFirstLogin untouched.
func (s *SessionStore) SetUser(ctx context.Context, p *domain.UserProfile) {
	firstLogin := false
	if p != nil {
		firstLogin = s.computeFirstLogin(ctx)
	}

	s.mu.Lock()
	s.user = p
	if p != nil {
		s.firstLogin = firstLogin
	}
	st := s.stateLocked()
	s.mu.Unlock()

	s.notify(st)

	// Stale writes completing after a later SetUser are simply overwritten
	// by that call's own write; no cancellation needed.
	go func() {
		bg := context.WithoutCancel(ctx)
		if p == nil {
			if err := s.cache.Remove(bg, domain.CacheKeyProfile); err != nil {
				s.log.Warn("failed to remove cached profile", "error", err)
			}
			return
		}
		s.persistProfile(bg, p)
	}()
}

// CompleteOnboarding marks onboarding done for this installation and flips
// IsFirstLogin to false. Idempotent in effect: the write repeats, the state
// ends up the same.
func (s *SessionStore) CompleteOnboarding(ctx context.Context) {
	if err := s.cache.Set(ctx, domain.CacheKeyOnboarded, domain.OnboardedValue); err != nil {
		// In-memory state stays the contract even when the write fails.
		s.log.Warn("failed to persist onboarding flag", "error", err)
	}

	s.mu.Lock()
	s.firstLogin = false
	st := s.stateLocked()
	s.mu.Unlock()

	s.notify(st)
}

// readCachedProfile returns the cached profile, or nil on miss, read
// failure, or a malformed snapshot. Failures degrade to absent.
func (s *SessionStore) readCachedProfile(ctx context.Context) *domain.UserProfile {
	raw, ok, err := s.cache.Get(ctx, domain.CacheKeyProfile)
	if err != nil {
		s.log.Warn("cache read failed, treating profile as absent", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	p, err := domain.DecodeProfile(raw)
	if err != nil {
		s.log.Warn("cached profile is malformed, treating as absent", "error", err)
		return nil
	}
	return p
}

// computeFirstLogin reads the onboarding flag. IsFirstLogin is true only
// when the flag is demonstrably unset; a read failure counts as "not first
// login" so onboarding is never re-shown by accident.
func (s *SessionStore) computeFirstLogin(ctx context.Context) bool {
	_, ok, err := s.cache.Get(ctx, domain.CacheKeyOnboarded)
	if err != nil {
		s.log.Warn("onboarding flag read failed, assuming not first login", "error", err)
		return false
	}
	return !ok
}

func (s *SessionStore) persistProfile(ctx context.Context, p *domain.UserProfile) {
	raw, err := domain.EncodeProfile(p)
	if err != nil {
		s.log.Warn("failed to encode profile for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, domain.CacheKeyProfile, raw); err != nil {
		s.log.Warn("failed to persist profile to cache", "error", err)
	}
}

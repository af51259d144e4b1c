// Package memory implements in-memory adapters for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"kittyfit/internal/domain"
)

// KV is an in-memory implementation of the local key-value cache.
type KV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKV creates an empty cache.
func NewKV() *KV {
	return &KV{data: make(map[string]string)}
}

var _ domain.Cache = (*KV)(nil)

// Get returns the value stored under key.
func (c *KV) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (c *KV) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (c *KV) Remove(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Store implements the hosted-store repositories and the identity provider
// in memory.
type Store struct {
	mu         sync.Mutex
	accounts   map[string]*domain.Account
	profiles   map[string]domain.StoredProfile
	logs       map[string]domain.WorkoutLog
	plans      map[string]domain.WorkoutPlan
	remembered string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		profiles: make(map[string]domain.StoredProfile),
		logs:     make(map[string]domain.WorkoutLog),
		plans:    make(map[string]domain.WorkoutPlan),
	}
}

// Ensure interfaces are met.
var (
	_ domain.AccountRepository     = (*Store)(nil)
	_ domain.ProfileRepository     = (*Store)(nil)
	_ domain.WorkoutLogRepository  = (*Store)(nil)
	_ domain.WorkoutPlanRepository = (*PlanRepo)(nil)
	_ domain.IdentityProvider      = (*Store)(nil)
)

// --- AccountRepository ---

// Create stores a new account.
func (s *Store) Create(ctx context.Context, a *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.accounts[a.ID] = &cp
	return nil
}

// GetByEmail returns the account with the given email, or nil.
func (s *Store) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// --- ProfileRepository ---

// Get resolves the profile for userID across primary and legacy owner keys.
func (s *Store) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]domain.StoredProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		candidates = append(candidates, p)
	}
	p, _ := domain.ResolveProfile(candidates, userID)
	return p, nil
}

// Save writes the profile wholesale. The legacy owner link on an existing
// row survives the rewrite; severing it would make the profile unresolvable
// for users who only match through it.
func (s *Store) Save(ctx context.Context, p *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = domain.StoredProfile{
		UserProfile: *p,
		OwnerID:     s.profiles[p.ID].OwnerID,
	}
	return nil
}

// SeedLegacyProfile inserts a record carrying the user's id only in the
// legacy owner column. Exercises the two-key resolution path in tests.
func (s *Store) SeedLegacyProfile(p domain.UserProfile, ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = domain.StoredProfile{UserProfile: p, OwnerID: ownerID}
}

// --- WorkoutLogRepository ---

// Add stores a new workout log.
func (s *Store) Add(ctx context.Context, l *domain.WorkoutLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[l.ID] = *l
	return nil
}

// GetByID returns the log, or nil when absent.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.logs[id]; ok {
		cp := l
		return &cp, nil
	}
	return nil, nil
}

// Update replaces a stored log.
func (s *Store) Update(ctx context.Context, l *domain.WorkoutLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[l.ID] = *l
	return nil
}

// Delete removes a log. Deleting an absent log is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.logs, id)
	return nil
}

// ListForUser returns the user's logs plus legacy unowned logs, newest
// first.
func (s *Store) ListForUser(ctx context.Context, userID string) ([]domain.WorkoutLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.WorkoutLog, 0)
	for _, l := range s.logs {
		if l.UserID == userID || l.UserID == "" {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

// --- WorkoutPlanRepository ---

// Plans returns the store's workout-plan repository view. Plans share the
// store but their repository method names collide with the log repository's,
// so they live on a separate type.
func (s *Store) Plans() *PlanRepo {
	return &PlanRepo{store: s}
}

// PlanRepo is the workout-plan view over a Store.
type PlanRepo struct {
	store *Store
}

// Add stores a new plan.
func (r *PlanRepo) Add(ctx context.Context, p *domain.WorkoutPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.plans[p.ID] = *p
	return nil
}

// GetByID returns the plan, or nil when absent.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.plans[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

// Delete removes a plan.
func (r *PlanRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.plans, id)
	return nil
}

// ListForUser returns the user's plans plus legacy unowned ones, newest
// first.
func (r *PlanRepo) ListForUser(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]domain.WorkoutPlan, 0)
	for _, p := range r.store.plans {
		if p.UserID == userID || p.UserID == "" {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// --- IdentityProvider ---

// CurrentUser resolves the remembered sign-in to its profile.
func (s *Store) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	s.mu.Lock()
	remembered := s.remembered
	s.mu.Unlock()

	if remembered == "" {
		return nil, nil
	}
	return s.Get(ctx, remembered)
}

// Remember records the signed-in user for this installation.
func (s *Store) Remember(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remembered = userID
	return nil
}

// Forget clears the remembered sign-in.
func (s *Store) Forget(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remembered = ""
	return nil
}

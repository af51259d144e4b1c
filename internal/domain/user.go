// Package domain contains the core business entities, ports, and pure
// functions of the kittyfit companion.
package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Cache keys for the local key-value cache.
const (
	// CacheKeyProfile holds the serialized snapshot of the active profile.
	CacheKeyProfile = "kittyfit.profile"

	// CacheKeyOnboarded marks onboarding as completed. It is a device-level
	// fact: switching accounts on one installation does not re-trigger
	// onboarding. Only a cache wipe resets it.
	CacheKeyOnboarded = "kittyfit.device.onboarded"
)

// OnboardedValue is the value stored under CacheKeyOnboarded. Presence of
// the key is what matters; the value is fixed for readability.
const OnboardedValue = "true"

// UserProfile is the companion-kitty profile of a signed-in user.
type UserProfile struct {
	ID         string `json:"id"`
	KittyName  string `json:"kittyName"`
	Avatar     string `json:"avatar"`
	Experience int    `json:"experience"`
	Level      int    `json:"level"`
	Coins      int    `json:"coins"`
}

// SessionState is the observable state the session store exposes. It is
// derived, never persisted.
type SessionState struct {
	User         *UserProfile `json:"user"`
	Loading      bool         `json:"loading"`
	IsFirstLogin bool         `json:"isFirstLogin"`
}

// ErrMalformedProfile indicates a cached profile snapshot that cannot be
// decoded. Callers treat it the same as an absent profile.
var ErrMalformedProfile = errors.New("malformed profile snapshot")

// EncodeProfile serializes a profile for the local cache.
func EncodeProfile(p *UserProfile) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	return string(b), nil
}

// DecodeProfile parses a cached profile snapshot. A snapshot without an ID
// is considered malformed: it cannot identify anyone.
func DecodeProfile(s string) (*UserProfile, error) {
	var p UserProfile
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, ErrMalformedProfile
	}
	if p.ID == "" {
		return nil, ErrMalformedProfile
	}
	return &p, nil
}

// experiencePerLevel is the flat amount of experience each level requires.
const experiencePerLevel = 100

// LevelForExperience maps total experience to a level, starting at 1.
func LevelForExperience(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/experiencePerLevel + 1
}

// Cache is the port for the local key-value cache. All operations may fail;
// callers degrade to absent/no-op rather than surfacing errors.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// IdentityProvider resolves a remembered sign-in on this installation to a
// user profile, independently of the local cache.
type IdentityProvider interface {
	// CurrentUser returns the remembered profile, or nil when none exists.
	CurrentUser(ctx context.Context) (*UserProfile, error)
	// Remember records the signed-in user for this installation.
	Remember(ctx context.Context, userID string) error
	// Forget clears the remembered sign-in.
	Forget(ctx context.Context) error
}

// Account holds sign-in credentials. Profiles and accounts share an ID.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AccountRepository is the port for account persistence.
type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// ProfileRepository is the port for server-side profile persistence.
type ProfileRepository interface {
	// Get returns the profile for the user, or nil when none exists.
	Get(ctx context.Context, userID string) (*UserProfile, error)
	// Save writes the profile wholesale, replacing any previous snapshot.
	Save(ctx context.Context, p *UserProfile) error
}

package app

import (
	"context"
	"errors"
	"time"

	"kittyfit/internal/domain"
	"kittyfit/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken indicates the email already has an account.
	ErrEmailTaken = errors.New("email already registered")
)

// defaultAvatar is assigned to freshly created profiles.
const defaultAvatar = "kitty-01"

// AuthService resolves credentials or SSO claims to a profile and hands the
// result to the session store. It never manages tokens itself; the session
// store's state is what the shell observes.
type AuthService struct {
	accounts domain.AccountRepository
	profiles domain.ProfileRepository
	identity domain.IdentityProvider
	sessions *SessionStore
	log      *logger.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(accounts domain.AccountRepository, profiles domain.ProfileRepository, identity domain.IdentityProvider, sessions *SessionStore, log *logger.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		profiles: profiles,
		identity: identity,
		sessions: sessions,
		log:      log,
	}
}

// Register creates an account with a fresh level-1 profile and signs it in.
func (s *AuthService) Register(ctx context.Context, email, password, kittyName string) (*domain.UserProfile, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	profile := newProfile(account.ID, kittyName)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.signIn(ctx, profile)
	return profile, nil
}

// Login verifies credentials and signs the matching profile in. A missing
// profile is auto-provisioned; accounts predating the kitty companion have
// none.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.loadOrProvision(ctx, account.ID, "")
	if err != nil {
		return nil, err
	}

	s.signIn(ctx, profile)
	return profile, nil
}

// LoginWithIdentity signs in a user already authenticated elsewhere (SSO).
// The subject claim is the stable user id; a profile is provisioned on
// first contact.
func (s *AuthService) LoginWithIdentity(ctx context.Context, subject, displayName string) (*domain.UserProfile, error) {
	if subject == "" {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.loadOrProvision(ctx, subject, displayName)
	if err != nil {
		return nil, err
	}

	s.signIn(ctx, profile)
	return profile, nil
}

// Logout clears the remembered sign-in and the active user. The device's
// onboarding flag survives sign-out on purpose.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.identity.Forget(ctx); err != nil {
		s.log.Warn("failed to clear remembered sign-in", "error", err)
	}
	s.sessions.SetUser(ctx, nil)
}

func (s *AuthService) loadOrProvision(ctx context.Context, userID, kittyName string) (*domain.UserProfile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = newProfile(userID, kittyName)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) signIn(ctx context.Context, profile *domain.UserProfile) {
	if err := s.identity.Remember(ctx, profile.ID); err != nil {
		s.log.Warn("failed to remember sign-in", "error", err, "userId", profile.ID)
	}
	s.sessions.SetUser(ctx, profile)
}

func newProfile(id, kittyName string) *domain.UserProfile {
	if kittyName == "" {
		kittyName = "Kitty"
	}
	return &domain.UserProfile{
		ID:        id,
		KittyName: kittyName,
		Avatar:    defaultAvatar,
		Level:     1,
	}
}

package app_test

import (
	"context"
	"testing"

	"kittyfit/internal/adapter/memory"
	"kittyfit/internal/app"
	"kittyfit/internal/domain"
	"kittyfit/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*app.AuthService, *app.SessionStore, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	sessions := app.NewSessionStore(memory.NewKV(), store, logger.NewDiscard())
	sessions.Start(context.Background())
	svc := app.NewAuthService(store, store, store, sessions, logger.NewDiscard())
	return svc, sessions, store
}

func TestRegisterCreatesProfileAndSignsIn(t *testing.T) {
	svc, sessions, _ := newAuthFixture(t)

	p, err := svc.Register(context.Background(), "meg@example.com", "hunter22", "Whiskers")
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Whiskers", p.KittyName)
	assert.Equal(t, 1, p.Level)
	assert.Zero(t, p.Experience)

	st := sessions.State()
	require.NotNil(t, st.User)
	assert.Equal(t, p.ID, st.User.ID)
	assert.True(t, st.IsFirstLogin, "fresh device")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "meg@example.com", "hunter22", "Whiskers")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "meg@example.com", "other", "Mittens")
	assert.ErrorIs(t, err, app.ErrEmailTaken)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, sessions, _ := newAuthFixture(t)

	registered, err := svc.Register(context.Background(), "meg@example.com", "hunter22", "Whiskers")
	require.NoError(t, err)

	svc.Logout(context.Background())
	require.Nil(t, sessions.State().User)

	p, err := svc.Login(context.Background(), "meg@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, p.ID)
	require.NotNil(t, sessions.State().User)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, sessions, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "meg@example.com", "hunter22", "Whiskers")
	require.NoError(t, err)
	svc.Logout(context.Background())

	_, err = svc.Login(context.Background(), "meg@example.com", "wrong")
	assert.ErrorIs(t, err, app.ErrInvalidCredentials)
	assert.Nil(t, sessions.State().User)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, app.ErrInvalidCredentials)
}

func TestLoginWithIdentityProvisionsProfile(t *testing.T) {
	svc, sessions, _ := newAuthFixture(t)

	p, err := svc.LoginWithIdentity(context.Background(), "oidc-sub-42", "Shadow")
	require.NoError(t, err)
	assert.Equal(t, "oidc-sub-42", p.ID)
	assert.Equal(t, "Shadow", p.KittyName)

	// Second SSO login finds the existing profile instead of re-provisioning.
	again, err := svc.LoginWithIdentity(context.Background(), "oidc-sub-42", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "Shadow", again.KittyName)

	require.NotNil(t, sessions.State().User)
}

func TestLoginWithIdentityEmptySubject(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.LoginWithIdentity(context.Background(), "", "Shadow")
	assert.ErrorIs(t, err, app.ErrInvalidCredentials)
}

func TestLoginResolvesLegacyProfile(t *testing.T) {
	svc, _, store := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "meg@example.com", "hunter22", "Whiskers")
	require.NoError(t, err)
	svc.Logout(context.Background())

	account, err := store.GetByEmail(context.Background(), "meg@example.com")
	require.NoError(t, err)

	// Replace the profile with a record matching only via the legacy owner
	// column; login must still find it rather than provisioning a new one.
	store.SeedLegacyProfile(domain.UserProfile{ID: account.ID, KittyName: "OldTimer", Level: 4}, "")
	store.SeedLegacyProfile(domain.UserProfile{ID: "legacy-row", KittyName: "Mittens", Level: 7}, account.ID)

	p, err := svc.Login(context.Background(), "meg@example.com", "hunter22")
	require.NoError(t, err)
	// Primary match wins over the legacy row.
	assert.Equal(t, "OldTimer", p.KittyName)
}

func TestLogoutForgetsRememberedSignIn(t *testing.T) {
	svc, sessions, store := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "meg@example.com", "hunter22", "Whiskers")
	require.NoError(t, err)

	// The identity provider remembers the sign-in.
	remembered, err := store.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, remembered)

	svc.Logout(context.Background())

	remembered, err = store.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, remembered)
	assert.Nil(t, sessions.State().User)
}

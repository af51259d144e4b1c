package config_test

import (
	"testing"
	"time"

	"kittyfit/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "default-device", cfg.DeviceID)
	require.Equal(t, time.Duration(0), cfg.RedirectDelay)
	require.Equal(t, 86400, cfg.SessionCookieMaxAge)
	require.False(t, cfg.OIDC.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DEVICE_ID", "kitchen-tablet")
	t.Setenv("REDIRECT_DELAY", "750ms")
	t.Setenv("OIDC_ENABLED", "true")
	t.Setenv("OIDC_ISSUER", "https://id.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, "kitchen-tablet", cfg.DeviceID)
	require.Equal(t, 750*time.Millisecond, cfg.RedirectDelay)
	require.True(t, cfg.OIDC.Enabled)
	require.Equal(t, "https://id.example.com", cfg.OIDC.Issuer)
}

package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/nearme-publisher/internal/config"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("COOKIE_SECRET", "cookie-secret")
	t.Setenv("CLIENT_ID", "client-id")
	t.Setenv("CLIENT_SECRET", "client-secret")
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequired(t)

		c, err := config.New()
		require.NoError(t, err)
		require.Equal(t, ":8011", c.GetPort())
		require.Equal(t, "DEV", c.GetEnv())
		require.True(t, config.IsDev(c))
		require.Equal(t, "https://api.zeit.co/v3/now", c.GetHostingAPIURL())
		require.Equal(t, "now.sh", c.GetAliasDomainSuffix())
		require.Equal(t, 30*time.Second, c.GetHostingCallTimeout())
		require.Equal(t, 720*time.Hour, c.GetMaxSessionAge())
		require.Equal(t, "cookie-secret", c.GetCookieSecret())
		require.Equal(t, "client-id", c.GetClientID())
		require.Empty(t, c.GetAllowedOrigins())
	})

	t.Run("overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PORT", ":9000")
		t.Setenv("ENV", "prod")
		t.Setenv("ALIAS_DOMAIN_SUFFIX", "example.dev")
		t.Setenv("HOSTING_CALL_TIMEOUT", "5s")
		t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

		c, err := config.New()
		require.NoError(t, err)
		require.Equal(t, ":9000", c.GetPort())
		require.Equal(t, "PROD", c.GetEnv())
		require.False(t, config.IsDev(c))
		require.Equal(t, "example.dev", c.GetAliasDomainSuffix())
		require.Equal(t, 5*time.Second, c.GetHostingCallTimeout())
		require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("https://b.example"))
	})

	t.Run("missing secret", func(t *testing.T) {
		setRequired(t)
		t.Setenv("COOKIE_SECRET", "")

		_, err := config.New()
		require.Error(t, err)
		require.Contains(t, err.Error(), "COOKIE_SECRET")
	})
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	cfg, err := InitConfig()
	require.NoError(t, err)

	t.Run("mode and listener settings", func(t *testing.T) {
		assert.Equal(t, "development", cfg.Mode)
		assert.Equal(t, "8080", cfg.Handlers.ExternalAPI.Port)
		assert.False(t, cfg.Handlers.ExternalAPI.EnableTLS)
		assert.Equal(t, "9090", cfg.Handlers.Prometheus.Port)
		assert.Equal(t, 60*time.Second, cfg.Server.Timeout)
	})

	t.Run("concierge pacing", func(t *testing.T) {
		assert.Equal(t, 45*time.Minute, cfg.Concierge.SessionTTL)
		assert.Equal(t, 900*time.Millisecond, cfg.Concierge.GreetingDelay)
		assert.Equal(t, 650*time.Millisecond, cfg.Concierge.StepDelay)
		assert.Equal(t, 1200*time.Millisecond, cfg.Concierge.ParagraphStagger)
	})

	t.Run("assistant defaults", func(t *testing.T) {
		assert.Equal(t, "gemini-2.0-flash", cfg.Assistant.Model)
		assert.Equal(t, 0.5, cfg.Assistant.Temperature)
	})
}

func TestInitConfigAdminSecretFromEnv(t *testing.T) {
	t.Setenv("LIV_ADMIN_JWT_SECRET", "from-env")

	cfg, err := InitConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Admin.JWTSecret)
}

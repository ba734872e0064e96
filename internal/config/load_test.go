package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithKeyFromEnv(t *testing.T) {
	t.Setenv("HELPER_LLM_GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, 10000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.ModelName)
	assert.Equal(t, 120, cfg.LLM.RequestTimeoutSeconds)
	assert.Equal(t, 500, cfg.LLM.SectionDelayMs)
	assert.Equal(t, 60, cfg.Session.TTLMinutes)
	assert.Equal(t, 10, cfg.Session.PurgeMinutes)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HELPER_LLM_GEMINI_API_KEY", "test-key")
	t.Setenv("HELPER_SERVER_PORT", "8080")
	t.Setenv("HELPER_SERVER_LOG_LEVEL", "debug")
	t.Setenv("HELPER_SESSION_TTL_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 5, cfg.Session.TTLMinutes)
}

func TestLoadMissingAPIKeyFails(t *testing.T) {
	t.Setenv("HELPER_LLM_GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HELPER_LLM_GEMINI_API_KEY", "test-key")
	t.Setenv("HELPER_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
}

package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, "sessions.db", cfg.Data.SessionDB)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestInitializeConfigEnvOverrides(t *testing.T) {
	t.Setenv("STEUER_LOG_LEVEL", "debug")
	t.Setenv("STEUER_SERVER_ADDRESS", ":9090")
	t.Setenv("STEUER_DATA_SESSION_DB", "custom.db")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "custom.db", cfg.Data.SessionDB)
}

func TestInitializeConfigGeminiKeyBinding(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
}

func TestInitializeConfigAIEnabledNeedsKey(t *testing.T) {
	t.Setenv("STEUER_AI_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestInitializeConfigInvalidLogLevel(t *testing.T) {
	t.Setenv("STEUER_LOG_LEVEL", "bogus")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestInitializeConfigInvalidLogFormat(t *testing.T) {
	t.Setenv("STEUER_LOG_FORMAT", "xml")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	var cfg Config
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(&cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestConfigureLoggingFromConfigFallsBackToInfo(t *testing.T) {
	var cfg Config
	cfg.Log.Level = "not-a-level"
	cfg.Log.Format = "text"

	logger := ConfigureLoggingFromConfig(&cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestGetGeminiAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "direct-key")
	assert.Equal(t, "direct-key", GetGeminiAPIKey())

	t.Setenv("GEMINI_API_KEY", "")
	assert.Equal(t, "", GetGeminiAPIKey())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("STEUER_TEST_VALUE", "present")
	assert.Equal(t, "present", GetEnv("STEUER_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("STEUER_TEST_MISSING", "fallback"))
}

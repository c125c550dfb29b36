package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mock-interview-backend", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "feedback.persist", cfg.RabbitMQ.FeedbackPersistQueue)
	assert.Equal(t, 10, cfg.RateLimit.AIRequestsPerMinute)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "key-from-env")
	t.Setenv("ENCRYPTION_KEY", "some-fernet-key")
	t.Setenv("RATELIMIT_AI_PER_MINUTE", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "key-from-env", cfg.LLM.APIKey)
	assert.Equal(t, "some-fernet-key", cfg.Crypto.EncryptionKey)
	assert.Equal(t, 3, cfg.RateLimit.AIRequestsPerMinute)
}

func TestGeminiAPIKeyAlias(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("GEMINI_API_KEY", "legacy-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-key", cfg.LLM.APIKey)
}

func TestLLMAPIKeyWinsOverGeminiAlias(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "openai-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai-key", cfg.LLM.APIKey)
}

func TestHTTPAddrAndDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	assert.Contains(t, cfg.MySQLDSN(), "@tcp(127.0.0.1:3306)/mock_interview?")
}

func TestBadIntEnvFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
}

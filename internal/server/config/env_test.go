package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("LLM_TIMEOUT", "10s")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, StoreBackendMemory, cfg.StoreBackend)
	assert.Equal(t, 90*time.Minute, cfg.SessionValidityDuration)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "gsk_test", cfg.LLMAPIKey)
	assert.Equal(t, 10*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "groq/compound", cfg.LLMModel, "unset variables keep defaults")
}

func Test_parseEnv_Invalid(t *testing.T) {
	t.Setenv("BCRYPT_COST", "lots")

	cfg := &Config{}
	require.Error(t, parseEnv(cfg))
}

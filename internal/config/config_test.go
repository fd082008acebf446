package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "PROMPT_MODEL", "CREATIVE_MODEL", "DB_TYPE", "DATABASE_URL", "SUGGESTION_DEBOUNCE", "SESSION_IDLE_TTL", "AUTH_MODE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.PromptModel)
	assert.Equal(t, "gemini-2.5-pro", cfg.CreativeModel)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "file:studio.db", cfg.DatabaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.SuggestionDebounce)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.False(t, cfg.IsGatewayMode())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "gateway")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SUGGESTION_TIMEOUT", "5s")
	t.Setenv("LANGFUSE_ENABLED", "true")
	t.Setenv("SESSION_IDLE_TTL", "10m")

	cfg := Load()
	assert.True(t, cfg.IsGatewayMode())
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.LangfuseEnabled)
	assert.Equal(t, 5*time.Second, cfg.SuggestionTimeout)
	assert.Equal(t, 10*time.Minute, cfg.SessionIdleTTL)
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", time.Second},
		{"250ms", 250 * time.Millisecond},
		{"750", 750 * time.Millisecond},
		{"garbage", time.Second},
		{"-5s", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getDuration("TEST_DURATION", time.Second))
		})
	}
}

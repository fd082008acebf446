package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
// Auth and user management are handled by the gateway in front of the API.
type Config struct {
	// Environment
	Environment string
	Port        string

	// LLM API Keys
	OpenAIAPIKey string // OpenAI API key for GPT models
	GeminiAPIKey string // Google Gemini API key

	// LLM selection
	LLMProvider   string // "", "gemini" or "openai"; empty infers from the model name
	PromptModel   string // structured calls: variations, inspire, suggestions, vibe analysis
	CreativeModel string // long-form writing: lyrics

	// Suggestion fetcher
	SuggestionDebounce time.Duration
	SuggestionTimeout  time.Duration

	// Idle clients are dropped from memory after this long; their session stays stored
	SessionIdleTTL time.Duration

	// Session storage
	DBType      string // "sqlite" or "postgres"
	DatabaseURL string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from the gateway
	AuthMode string
}

func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "8080"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		LLMProvider:        getEnv("LLM_PROVIDER", ""),
		PromptModel:        getEnv("PROMPT_MODEL", "gemini-2.5-flash"),
		CreativeModel:      getEnv("CREATIVE_MODEL", "gemini-2.5-pro"),
		SuggestionDebounce: getDuration("SUGGESTION_DEBOUNCE", 500*time.Millisecond),
		SuggestionTimeout:  getDuration("SUGGESTION_TIMEOUT", 30*time.Second),
		SessionIdleTTL:     getDuration("SESSION_IDLE_TTL", 30*time.Minute),
		DBType:             getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:        getEnv("DATABASE_URL", "file:studio.db"),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:  getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:  getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:       getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:    getEnv("LANGFUSE_ENABLED", "false") == "true",
		AuthMode:           getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("750ms") or plain milliseconds ("750")
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

// IsGatewayMode returns true if running behind the gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// IsProduction reports whether production-only integrations should be enabled
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

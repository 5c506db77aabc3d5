package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/prepwise/interview-engine/internal/errors"
)

// Config holds runtime configuration loaded from the environment
type Config struct {
	Port           string
	GinMode        string
	AllowedOrigins []string

	GeminiAPIKey string
	GeminiModel  string

	AssemblyAIAPIKey  string
	AssemblyAIBaseURL string

	MaxConcurrentAnalyses int
	RequestTimeout        time.Duration
	QuestionCacheTTL      time.Duration
	MaxRequestsPerMin     int
}

// Load reads configuration from the environment. A .env file is
// applied first when present so local runs match deployed behavior.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		GinMode:               getEnv("GIN_MODE", "release"),
		AllowedOrigins:        splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AssemblyAIAPIKey:      os.Getenv("ASSEMBLYAI_API_KEY"),
		AssemblyAIBaseURL:     getEnv("ASSEMBLYAI_BASE_URL", "https://api.assemblyai.com"),
		MaxConcurrentAnalyses: getEnvInt("MAX_CONCURRENT_ANALYSES", 4),
		RequestTimeout:        getEnvDuration("REQUEST_TIMEOUT", 5*time.Minute),
		QuestionCacheTTL:      getEnvDuration("QUESTION_CACHE_TTL", 30*time.Minute),
		MaxRequestsPerMin:     getEnvInt("MAX_REQUESTS_PER_MIN", 60),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects values a running server cannot work with. Missing
// provider keys are allowed since both providers degrade to fixed
// fallback scores.
func (c *Config) validate() error {
	if c.MaxConcurrentAnalyses < 1 {
		return apperrors.NewConfigurationError("MAX_CONCURRENT_ANALYSES must be at least 1", nil)
	}
	if c.MaxRequestsPerMin < 1 {
		return apperrors.NewConfigurationError("MAX_REQUESTS_PER_MIN must be at least 1", nil)
	}
	if c.RequestTimeout < time.Second {
		return apperrors.NewConfigurationError("REQUEST_TIMEOUT must be at least 1s", nil)
	}
	return nil
}

// HasGemini reports whether text evaluation is configured
func (c *Config) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

// HasTranscription reports whether audio transcription is configured
func (c *Config) HasTranscription() bool {
	return c.AssemblyAIAPIKey != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

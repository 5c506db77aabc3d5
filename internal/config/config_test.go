package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, "https://api.assemblyai.com", cfg.AssemblyAIBaseURL)
	assert.Equal(t, 4, cfg.MaxConcurrentAnalyses)
	assert.Equal(t, 5*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, 60, cfg.MaxRequestsPerMin)
	assert.NotEmpty(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_CONCURRENT_ANALYSES", "8")
	t.Setenv("REQUEST_TIMEOUT", "90s")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 8, cfg.MaxConcurrentAnalyses)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.HasGemini())
	assert.False(t, cfg.HasTranscription())
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_ANALYSES", "not-a-number")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxConcurrentAnalyses)
	assert.Equal(t, 5*time.Minute, cfg.RequestTimeout)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_ANALYSES", "0")

	_, err := Load()

	assert.Error(t, err)
}

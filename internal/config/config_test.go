package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "data/products.json", cfg.Catalog.Path)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 5, cfg.Recommendation.MaxRecommendations)
	assert.Equal(t, 20, cfg.Recommendation.MaxProductsInPrompt)
	assert.Equal(t, 4.0, cfg.Recommendation.QualityFloor)
	assert.Equal(t, "info", cfg.Observability.LogLevel)

	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 8080
llm:
  model: gpt-4
  max_tokens: 1024
cache:
  driver: redis
  redis:
    addr: redis.internal:6379
recommendation:
  max_recommendations: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gpt-4", cfg.LLM.Model)
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "redis.internal:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 3, cfg.Recommendation.MaxRecommendations)
	// Untouched sections keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 4.0, cfg.Recommendation.QualityFloor)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MODEL_NAME", "gpt-4o-mini")
	t.Setenv("MAX_TOKENS", "300")
	t.Setenv("TEMPERATURE", "0.2")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "120")
	t.Setenv("REDIS_URL", "redis://cache.internal:6380")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 300, cfg.LLM.MaxTokens)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "cache.internal:6380", cfg.Cache.Redis.Addr)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o644))
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 0 }},
		{"unknown cache driver", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"non-positive max tokens", func(c *Config) { c.LLM.MaxTokens = 0 }},
		{"temperature out of range", func(c *Config) { c.LLM.Temperature = 2.5 }},
		{"zero max recommendations", func(c *Config) { c.Recommendation.MaxRecommendations = 0 }},
		{"prompt budget below max recommendations", func(c *Config) { c.Recommendation.MaxProductsInPrompt = 2 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)

	assert.Error(t, err)
}

// Package main provides the recommendation API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopsense-ai/recommendation-engine/internal/cache"
	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
	"github.com/shopsense-ai/recommendation-engine/internal/config"
	"github.com/shopsense-ai/recommendation-engine/internal/llm"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
	"github.com/shopsense-ai/recommendation-engine/internal/recommend"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "recommendation-engine",
	})

	if cfg.LLM.APIKey == "" {
		logger.Fatal().Msg("OPENAI_API_KEY is required but not set")
	}

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("model", cfg.LLM.Model).
		Str("catalog", cfg.Catalog.Path).
		Msg("Starting recommendation API")

	store := catalog.Load(cfg.Catalog.Path, logger)

	generator, err := llm.NewClient(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create generation client")
	}

	respCache := buildResponseCache(cfg, logger)

	engine := recommend.NewEngine(store, generator, respCache, logger, recommend.EngineConfig{
		MaxRecommendations:  cfg.Recommendation.MaxRecommendations,
		MaxProductsInPrompt: cfg.Recommendation.MaxProductsInPrompt,
		QualityFloor:        cfg.Recommendation.QualityFloor,
	})

	router := NewRouter(logger, store, engine, RouterConfig{
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}

// buildResponseCache wires the configured cache backend. Redis problems
// degrade to the in-memory cache rather than failing startup.
func buildResponseCache(cfg *config.Config, logger *observability.Logger) *recommend.ResponseCache {
	if !cfg.Cache.Enabled {
		return nil
	}

	var client cache.Client
	if cfg.Cache.Driver == "redis" {
		redisClient, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
			client = cache.NewMemoryClient(cfg.Cache.MaxEntries)
		} else {
			client = redisClient
		}
	} else {
		client = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}

	return recommend.NewResponseCache(client, logger, cfg.Cache.TTL)
}

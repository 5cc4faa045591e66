package recommend

import (
	"context"

	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
)

// Generator produces one completion for a prompt. Satisfied by llm.Client.
type Generator interface {
	Complete(ctx context.Context, systemRole, prompt string) (string, error)
}

// EngineConfig holds pipeline tuning knobs.
type EngineConfig struct {
	MaxRecommendations  int
	MaxProductsInPrompt int
	QualityFloor        float64
}

// DefaultEngineConfig returns the standard pipeline settings.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxRecommendations:  5,
		MaxProductsInPrompt: 20,
		QualityFloor:        4.0,
	}
}

// Engine runs the recommendation pipeline: resolve history, pre-filter,
// prompt, generate, interpret, with the rule-based recommender as the
// fallback when generation itself fails.
type Engine struct {
	store       *catalog.Store
	generator   Generator
	cache       *ResponseCache
	logger      *observability.Logger
	prefilter   *Prefilter
	interpreter *Interpreter
	rules       *RuleBasedRecommender
}

// NewEngine wires the pipeline. cache may be nil to disable response caching.
func NewEngine(store *catalog.Store, generator Generator, respCache *ResponseCache, logger *observability.Logger, cfg EngineConfig) *Engine {
	if cfg.MaxRecommendations <= 0 {
		cfg = DefaultEngineConfig()
	}

	return &Engine{
		store:       store,
		generator:   generator,
		cache:       respCache,
		logger:      logger,
		prefilter:   NewPrefilter(cfg.QualityFloor, cfg.MaxProductsInPrompt),
		interpreter: NewInterpreter(store, logger, cfg.MaxRecommendations),
		rules:       NewRuleBasedRecommender(store, logger, cfg.MaxRecommendations),
	}
}

// Recommend generates recommendations for the given preferences and browsing
// history. It always returns a result; failures degrade the status instead
// of propagating.
func (e *Engine) Recommend(ctx context.Context, prefs UserPreferences, browsingHistory []string) *Result {
	prefs = prefs.normalized()
	log := e.logger.WithContext(ctx)

	browsed, validHistory := e.resolveHistory(ctx, browsingHistory)

	var cacheKey string
	if e.cache != nil {
		cacheKey = e.cache.Key(prefs, validHistory)
		if cached := e.cache.Get(ctx, cacheKey); cached != nil {
			log.Debug().Str("cache_key", cacheKey).Msg("Recommendation served from cache")
			return cached
		}
	}

	candidates := e.prefilter.Candidates(prefs, e.store.All())
	log.Debug().Int("candidates", len(candidates)).Msg("Pre-filtered catalog for prompt")

	prompt := BuildPrompt(prefs, browsed, candidates)

	raw, err := e.generator.Complete(ctx, SystemRole, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("Generation call failed, switching to rule-based recommendations")
		return e.rules.Recommend(prefs)
	}

	result := e.interpreter.Interpret(raw)

	log.Info().
		Str("status", string(result.Status)).
		Int("count", result.Count).
		Msg("Recommendation result produced")

	if e.cache != nil && result.Status == StatusSuccess {
		e.cache.Put(ctx, cacheKey, result)
	}

	return result
}

// resolveHistory validates browsing-history ids against the catalog.
// Unknown ids are dropped with a warning, never an error.
func (e *Engine) resolveHistory(ctx context.Context, history []string) ([]catalog.Product, []string) {
	var browsed []catalog.Product
	var valid []string

	for _, id := range history {
		product, ok := e.store.GetByID(id)
		if !ok {
			e.logger.WithContext(ctx).Warn().Str("product_id", id).Msg("Invalid product ID in browsing history")
			continue
		}
		browsed = append(browsed, product)
		valid = append(valid, id)
	}

	return browsed, valid
}

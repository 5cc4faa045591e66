package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
)

const (
	ruleBasedConfidence = 0.7
	ruleBasedMessage    = "Using rule-based recommendations due to LLM service issues"
)

// RuleBasedRecommender is the deterministic filter-and-sort substitute used
// when the generation backend itself fails.
type RuleBasedRecommender struct {
	store  *catalog.Store
	logger *observability.Logger
	max    int
}

// NewRuleBasedRecommender creates a rule-based recommender over the catalog.
func NewRuleBasedRecommender(store *catalog.Store, logger *observability.Logger, max int) *RuleBasedRecommender {
	if max <= 0 {
		max = 5
	}
	return &RuleBasedRecommender{
		store:  store,
		logger: logger,
		max:    max,
	}
}

// Recommend filters by preferred categories and price band, drops
// out-of-stock products, and returns the top-rated remainder with a
// templated explanation and fixed confidence.
func (r *RuleBasedRecommender) Recommend(prefs UserPreferences) *Result {
	prefs = prefs.normalized()

	r.logger.Info().Msg("Using rule-based recommendations due to generation failure")

	var candidates []catalog.Product
	for _, p := range r.store.All() {
		if len(prefs.Categories) > 0 && !containsString(prefs.Categories, p.Category) {
			continue
		}

		if !prefs.PriceRange.Includes(p.Price) {
			continue
		}

		if !p.InStock() {
			continue
		}

		candidates = append(candidates, p)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Rating > candidates[j].Rating
	})

	if len(candidates) > r.max {
		candidates = candidates[:r.max]
	}

	recs := make([]Recommendation, 0, len(candidates))
	for _, p := range candidates {
		recs = append(recs, Recommendation{
			Product:         p,
			Explanation:     fmt.Sprintf("Highly rated %s product that matches your preferences", strings.ToLower(p.Category)),
			ConfidenceScore: ruleBasedConfidence,
		})
	}

	result := newResult(recs, StatusFallback)
	result.Message = ruleBasedMessage
	return result
}

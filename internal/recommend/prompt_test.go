package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt_IsDeterministic(t *testing.T) {
	prefs := UserPreferences{
		PriceRange: PriceRangeMid,
		Categories: []string{"Electronics", "Fitness"},
		MinRating:  4,
	}
	browsed := fixtureCatalog()[:2]
	candidates := fixtureCatalog()[:3]

	first := BuildPrompt(prefs, browsed, candidates)
	second := BuildPrompt(prefs, browsed, candidates)

	assert.Equal(t, first, second)
}

func TestBuildPrompt_SectionsInOrder(t *testing.T) {
	prompt := BuildPrompt(UserPreferences{PriceRange: PriceRangeBudget}, fixtureCatalog()[:1], fixtureCatalog()[:2])

	sections := []string{
		"recommend exactly 5 products",
		"=== USER PREFERENCES ===",
		"=== BROWSING HISTORY ANALYSIS ===",
		"=== AVAILABLE PRODUCTS (2 items) ===",
		"=== RECOMMENDATION STRATEGY ===",
		"=== OUTPUT FORMAT ===",
	}

	last := -1
	for _, s := range sections {
		idx := strings.Index(prompt, s)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestBuildPrompt_RendersNonEmptyPreferences(t *testing.T) {
	prefs := UserPreferences{
		PriceRange:    PriceRangePremium,
		Categories:    []string{"Kitchen"},
		Brands:        []string{"BrewMaster", "Lumina"},
		MinRating:     4.5,
		LifestyleType: "home barista",
	}

	prompt := BuildPrompt(prefs, nil, fixtureCatalog()[:1])

	assert.Contains(t, prompt, "- Price Range: premium")
	assert.Contains(t, prompt, "- Categories: Kitchen")
	assert.Contains(t, prompt, "- Brands: BrewMaster, Lumina")
	assert.Contains(t, prompt, "- Min Rating: 4.5")
	assert.Contains(t, prompt, "- Lifestyle Type: home barista")
	assert.NotContains(t, prompt, "Specific Needs")
}

func TestBuildPrompt_EmptyPreferencesNotice(t *testing.T) {
	prompt := BuildPrompt(UserPreferences{}, nil, fixtureCatalog()[:1])

	assert.Contains(t, prompt, "- No specific preferences provided")
}

func TestBuildPrompt_NoHistoryNotice(t *testing.T) {
	prompt := BuildPrompt(UserPreferences{PriceRange: PriceRangeMid}, nil, fixtureCatalog()[:1])

	assert.Contains(t, prompt, "- No browsing history available - focus on stated preferences")
	assert.NotContains(t, prompt, "Browsing Patterns:")
}

func TestBuildPrompt_HistoryAndInsights(t *testing.T) {
	browsed := fixtureCatalog()[:2]

	prompt := BuildPrompt(UserPreferences{}, browsed, fixtureCatalog()[:1])

	assert.Contains(t, prompt, "User has viewed 2 products:")
	assert.Contains(t, prompt, "- Wireless Headphones | Electronics | $80 | Rating: 4.5")
	assert.Contains(t, prompt, "Browsing Patterns:")
	assert.Contains(t, prompt, "- Average price viewed: $52.50")
}

func TestBuildPrompt_CandidateEntriesTruncateFeaturesAndTags(t *testing.T) {
	prompt := BuildPrompt(UserPreferences{}, nil, fixtureCatalog()[:1])

	assert.Contains(t, prompt, "1. ID: prod001 | Wireless Headphones | Electronics | $80 | ★4.5 | SoundCore")
	assert.Contains(t, prompt, "Features: ANC, 40h battery, USB-C")
	assert.NotContains(t, prompt, "foldable")
	assert.Contains(t, prompt, "Tags: audio, wireless")
	assert.NotContains(t, prompt, "travel")
}

func TestBuildPrompt_OutputContract(t *testing.T) {
	prompt := BuildPrompt(UserPreferences{}, nil, fixtureCatalog()[:2])

	assert.Contains(t, prompt, `"product_id"`)
	assert.Contains(t, prompt, "Confidence scores between 0.1 and 1.0")
	assert.Contains(t, prompt, "Use only product IDs from the AVAILABLE PRODUCTS list above")
	assert.Contains(t, prompt, "Ensure 5 different products are recommended")
}

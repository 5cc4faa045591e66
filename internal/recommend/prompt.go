package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
)

// SystemRole frames the model's role for every generation call.
const SystemRole = "You are a helpful eCommerce product recommendation assistant."

const taskFraming = `You are an expert product recommendation specialist. Your task is to analyze user preferences and browsing history to recommend exactly 5 products that best match their needs and interests.

IMPORTANT: You must select products ONLY from the AVAILABLE PRODUCTS list provided below.`

const strategyAndFormat = `
=== RECOMMENDATION STRATEGY ===
1. Analyze user preferences and browsing patterns to understand their needs
2. Consider price sensitivity based on viewed products and stated preferences
3. Look for complementary products that work well together
4. Balance popular/highly-rated items with unique finds
5. Ensure variety in categories while staying relevant to user interests

=== OUTPUT FORMAT ===
Respond with a JSON array containing exactly 5 recommendations:

[
  {
    "product_id": "exact_id_from_available_products",
    "confidence_score": 0.85,
    "explanation": "2-3 sentences explaining why this product matches the user's profile, referencing specific preferences or browsing patterns."
  }
]

REQUIREMENTS:
- Use only product IDs from the AVAILABLE PRODUCTS list above
- Confidence scores between 0.1 and 1.0
- Each explanation should be specific and personalized
- Ensure 5 different products are recommended`

// BuildPrompt composes the generation instruction from the preferences, the
// resolved browsed products, and the pre-filtered candidate set. The output
// is a pure function of its inputs.
func BuildPrompt(prefs UserPreferences, browsed []catalog.Product, candidates []catalog.Product) string {
	prefs = prefs.normalized()

	var b strings.Builder
	b.WriteString(taskFraming)

	b.WriteString("\n\n=== USER PREFERENCES ===")
	prefLines := preferenceLines(prefs)
	if len(prefLines) == 0 {
		b.WriteString("\n- No specific preferences provided")
	} else {
		for _, line := range prefLines {
			b.WriteString("\n" + line)
		}
	}

	b.WriteString("\n\n=== BROWSING HISTORY ANALYSIS ===")
	if len(browsed) == 0 {
		b.WriteString("\n- No browsing history available - focus on stated preferences")
	} else {
		fmt.Fprintf(&b, "\nUser has viewed %d products:", len(browsed))
		for _, p := range browsed {
			fmt.Fprintf(&b, "\n- %s | %s | $%s | Rating: %s", p.Name, p.Category, num(p.Price), num(p.Rating))
		}
		if insights := ExtractInsights(browsed); insights != nil {
			b.WriteString("\n\nBrowsing Patterns:")
			for _, line := range insights.lines() {
				b.WriteString("\n" + line)
			}
		}
	}

	fmt.Fprintf(&b, "\n\n=== AVAILABLE PRODUCTS (%d items) ===", len(candidates))
	for i, p := range candidates {
		fmt.Fprintf(&b, "\n%d. ID: %s | %s | %s | $%s | ★%s | %s",
			i+1, p.ID, p.Name, p.Category, num(p.Price), num(p.Rating), p.Brand)

		if features := firstN(p.Features, 3); len(features) > 0 {
			b.WriteString(" | Features: " + strings.Join(features, ", "))
		}
		if tags := firstN(p.Tags, 2); len(tags) > 0 {
			b.WriteString(" | Tags: " + strings.Join(tags, ", "))
		}
	}

	b.WriteString("\n" + strategyAndFormat)

	return b.String()
}

// preferenceLines renders every non-empty preference field in a fixed order.
func preferenceLines(prefs UserPreferences) []string {
	var lines []string

	if prefs.PriceRange != "" && prefs.PriceRange != PriceRangeAll {
		lines = append(lines, "- Price Range: "+string(prefs.PriceRange))
	}
	if prefs.CustomPriceRange != nil {
		lines = append(lines, fmt.Sprintf("- Custom Price Range: $%s - $%s",
			num(prefs.CustomPriceRange.Min), num(prefs.CustomPriceRange.Max)))
	}
	if len(prefs.Categories) > 0 {
		lines = append(lines, "- Categories: "+strings.Join(prefs.Categories, ", "))
	}
	if len(prefs.Brands) > 0 {
		lines = append(lines, "- Brands: "+strings.Join(prefs.Brands, ", "))
	}
	if prefs.MinRating > 0 {
		lines = append(lines, "- Min Rating: "+num(prefs.MinRating))
	}
	if prefs.LifestyleType != "" {
		lines = append(lines, "- Lifestyle Type: "+prefs.LifestyleType)
	}
	if prefs.SpecificNeeds != "" {
		lines = append(lines, "- Specific Needs: "+prefs.SpecificNeeds)
	}
	if prefs.AdditionalNotes != "" {
		lines = append(lines, "- Additional Notes: "+prefs.AdditionalNotes)
	}

	return lines
}

// num formats a number with the shortest representation that round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

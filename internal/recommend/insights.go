package recommend

import (
	"fmt"
	"strings"

	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
)

// Insights summarizes a browsed-product set into aggregate signals for the
// prompt. Purely descriptive; no normalization beyond formatting.
type Insights struct {
	PrimaryCategories string
	AveragePrice      string
	PriceRange        string
	PreferredBrands   string
	QualityPreference string
}

// ExtractInsights computes browsing signals from the resolved browsed
// products. Returns nil when the list is empty.
func ExtractInsights(browsed []catalog.Product) *Insights {
	if len(browsed) == 0 {
		return nil
	}

	var priceSum, ratingSum float64
	minPrice, maxPrice := browsed[0].Price, browsed[0].Price
	for _, p := range browsed {
		priceSum += p.Price
		ratingSum += p.Rating
		if p.Price < minPrice {
			minPrice = p.Price
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}

	n := float64(len(browsed))
	return &Insights{
		PrimaryCategories: strings.Join(distinctLimit(browsed, func(p catalog.Product) string { return p.Category }, 3), ", "),
		AveragePrice:      fmt.Sprintf("$%.2f", priceSum/n),
		PriceRange:        fmt.Sprintf("$%.2f - $%.2f", minPrice, maxPrice),
		PreferredBrands:   strings.Join(distinctLimit(browsed, func(p catalog.Product) string { return p.Brand }, 3), ", "),
		QualityPreference: fmt.Sprintf("Average rating viewed: %.1f", ratingSum/n),
	}
}

// lines renders the insight block in a fixed order so prompts stay
// deterministic.
func (in *Insights) lines() []string {
	return []string{
		"- Primary categories: " + in.PrimaryCategories,
		"- Average price viewed: " + in.AveragePrice,
		"- Price range: " + in.PriceRange,
		"- Preferred brands: " + in.PreferredBrands,
		"- Quality preference: " + in.QualityPreference,
	}
}

// distinctLimit collects up to limit distinct values in first-seen order.
func distinctLimit(products []catalog.Product, field func(catalog.Product) string, limit int) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, p := range products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
		if len(values) == limit {
			break
		}
	}
	return values
}

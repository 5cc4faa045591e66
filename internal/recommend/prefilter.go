package recommend

import (
	"sort"

	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
)

// backfillLimit is how many candidates may accumulate before products
// outside the preferred categories stop being admitted for variety.
const backfillLimit = 15

// Prefilter reduces the catalog to a bounded candidate set for the prompt.
// It is a relevance funnel for token-budget control, not a hard filter:
// false negatives are acceptable.
type Prefilter struct {
	qualityFloor  float64
	maxCandidates int
}

// NewPrefilter creates a pre-filter with the given quality floor and
// candidate cap.
func NewPrefilter(qualityFloor float64, maxCandidates int) *Prefilter {
	if qualityFloor <= 0 {
		qualityFloor = 4.0
	}
	if maxCandidates <= 0 {
		maxCandidates = 20
	}
	return &Prefilter{
		qualityFloor:  qualityFloor,
		maxCandidates: maxCandidates,
	}
}

// Candidates returns at most maxCandidates in-stock, high-rated products
// matching the preference price band, ordered by descending rating.
// Products in preferred categories are prioritized, with non-matching
// products backfilled for variety while the set is small.
func (f *Prefilter) Candidates(prefs UserPreferences, products []catalog.Product) []catalog.Product {
	prefs = prefs.normalized()

	var filtered []catalog.Product
	for _, p := range products {
		if !p.InStock() {
			continue
		}

		if p.Rating < f.qualityFloor {
			continue
		}

		if !prefs.PriceRange.Includes(p.Price) {
			continue
		}

		if len(prefs.Categories) > 0 {
			if containsString(prefs.Categories, p.Category) {
				filtered = append(filtered, p)
			} else if len(filtered) < backfillLimit {
				filtered = append(filtered, p)
			}
			continue
		}

		filtered = append(filtered, p)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Rating > filtered[j].Rating
	})

	if len(filtered) > f.maxCandidates {
		filtered = filtered[:f.maxCandidates]
	}

	return filtered
}

func containsString(values []string, v string) bool {
	for _, val := range values {
		if val == v {
			return true
		}
	}
	return false
}

package recommend

// PriceRange is one of the named price bands used for coarse filtering.
type PriceRange string

const (
	PriceRangeAll     PriceRange = "all"
	PriceRangeBudget  PriceRange = "budget"
	PriceRangeMid     PriceRange = "mid"
	PriceRangePremium PriceRange = "premium"
	PriceRangeCustom  PriceRange = "custom"
)

// Band boundaries shared by the pre-filter and the rule-based recommender.
const (
	budgetCeiling = 50.0
	midCeiling    = 150.0
)

// Includes applies the bucket test for the band. The "all" and "custom"
// bands are unbounded here: a custom min/max is only interpreted at the
// request boundary, not during filtering.
func (pr PriceRange) Includes(price float64) bool {
	switch pr {
	case PriceRangeBudget:
		return price < budgetCeiling
	case PriceRangeMid:
		return price >= budgetCeiling && price <= midCeiling
	case PriceRangePremium:
		return price > midCeiling
	default:
		return true
	}
}

// Valid reports whether the value is a known band name.
func (pr PriceRange) Valid() bool {
	switch pr {
	case PriceRangeAll, PriceRangeBudget, PriceRangeMid, PriceRangePremium, PriceRangeCustom:
		return true
	}
	return false
}

// PriceBounds is an explicit min/max price window.
type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UserPreferences captures the shopper's stated preferences for one request.
// Constructed at the boundary, never persisted.
type UserPreferences struct {
	PriceRange       PriceRange
	CustomPriceRange *PriceBounds
	Categories       []string
	Brands           []string
	MinRating        float64
	LifestyleType    string
	SpecificNeeds    string
	AdditionalNotes  string
}

// IsEmpty reports whether no preference field carries a signal.
func (p UserPreferences) IsEmpty() bool {
	return (p.PriceRange == "" || p.PriceRange == PriceRangeAll) &&
		p.CustomPriceRange == nil &&
		len(p.Categories) == 0 &&
		len(p.Brands) == 0 &&
		p.MinRating == 0 &&
		p.LifestyleType == "" &&
		p.SpecificNeeds == "" &&
		p.AdditionalNotes == ""
}

// normalized returns the preferences with an explicit band default.
func (p UserPreferences) normalized() UserPreferences {
	if p.PriceRange == "" {
		p.PriceRange = PriceRangeAll
	}
	return p
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
	"github.com/shopsense-ai/recommendation-engine/internal/recommend"
)

// RecommendationsHandler serves the recommendation pipeline.
type RecommendationsHandler struct {
	logger   *observability.Logger
	engine   *recommend.Engine
	validate *validator.Validate
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(logger *observability.Logger, engine *recommend.Engine) *RecommendationsHandler {
	return &RecommendationsHandler{
		logger:   logger,
		engine:   engine,
		validate: validator.New(),
	}
}

// UserPreferencesDTO is the preferences block of a recommendation request.
type UserPreferencesDTO struct {
	PriceRange       string          `json:"priceRange" validate:"omitempty,oneof=all budget mid premium custom"`
	CustomPriceRange *PriceBoundsDTO `json:"customPriceRange,omitempty"`
	Categories       []string        `json:"categories"`
	Brands           []string        `json:"brands"`
	MinRating        float64         `json:"minRating" validate:"gte=0,lte=5"`
	LifestyleType    string          `json:"lifestyleType,omitempty"`
	SpecificNeeds    string          `json:"specificNeeds,omitempty"`
	AdditionalNotes  string          `json:"additionalNotes,omitempty"`
}

// PriceBoundsDTO is an explicit custom price window.
type PriceBoundsDTO struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gte=0"`
}

// RecommendationRequestDTO is the request body for POST /api/recommendations.
type RecommendationRequestDTO struct {
	Preferences     UserPreferencesDTO `json:"preferences"`
	BrowsingHistory []string           `json:"browsing_history"`
}

// Generate handles POST /api/recommendations.
func (h *RecommendationsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.logger.WithContext(ctx)

	var dto RecommendationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validate.Struct(dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid preferences", err.Error())
		return
	}

	prefs := toPreferences(dto.Preferences)

	if prefs.IsEmpty() && len(dto.BrowsingHistory) == 0 {
		writeError(w, http.StatusBadRequest, "Either preferences or browsing history must be provided", "")
		return
	}

	log.Info().
		Str("price_range", string(prefs.PriceRange)).
		Strs("categories", prefs.Categories).
		Int("history_size", len(dto.BrowsingHistory)).
		Msg("Generating recommendations")

	result := h.engine.Recommend(ctx, prefs, dto.BrowsingHistory)

	writeJSON(w, http.StatusOK, result)
}

// toPreferences converts the DTO into the domain type, resolving the custom
// price window only when the custom band is selected.
func toPreferences(dto UserPreferencesDTO) recommend.UserPreferences {
	prefs := recommend.UserPreferences{
		PriceRange:      recommend.PriceRange(dto.PriceRange),
		Categories:      dto.Categories,
		Brands:          dto.Brands,
		MinRating:       dto.MinRating,
		LifestyleType:   dto.LifestyleType,
		SpecificNeeds:   dto.SpecificNeeds,
		AdditionalNotes: dto.AdditionalNotes,
	}

	if prefs.PriceRange == recommend.PriceRangeCustom && dto.CustomPriceRange != nil {
		prefs.CustomPriceRange = &recommend.PriceBounds{
			Min: dto.CustomPriceRange.Min,
			Max: dto.CustomPriceRange.Max,
		}
	}

	return prefs
}

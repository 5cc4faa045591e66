package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
	"github.com/shopsense-ai/recommendation-engine/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Complete(context.Context, string, string) (string, error) {
	return s.response, s.err
}

func recommendationsRouter(gen recommend.Generator) http.Handler {
	engine := recommend.NewEngine(fixtureStore(), gen, nil, observability.Nop(), recommend.DefaultEngineConfig())
	h := NewRecommendationsHandler(observability.Nop(), engine)

	r := chi.NewRouter()
	r.Post("/api/recommendations", h.Generate)
	return r
}

func TestRecommendations_Success(t *testing.T) {
	router := recommendationsRouter(&stubGenerator{
		response: `[{"product_id":"prod001","confidence_score":0.9,"explanation":"Matches your audio interest"}]`,
	})

	rec := doRequest(t, router, http.MethodPost, "/api/recommendations",
		`{"preferences":{"priceRange":"mid","categories":["Electronics"]}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(1), body["count"])
	recs := body["recommendations"].([]interface{})
	first := recs[0].(map[string]interface{})
	assert.Equal(t, 0.9, first["confidence_score"])
	assert.Equal(t, "Matches your audio interest", first["explanation"])
}

func TestRecommendations_HistoryOnlyIsAccepted(t *testing.T) {
	router := recommendationsRouter(&stubGenerator{response: `[]`})

	rec := doRequest(t, router, http.MethodPost, "/api/recommendations",
		`{"browsing_history":["prod001","prod002"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
}

func TestRecommendations_RejectsEmptyRequest(t *testing.T) {
	router := recommendationsRouter(&stubGenerator{response: `[]`})

	rec := doRequest(t, router, http.MethodPost, "/api/recommendations", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Either preferences or browsing history must be provided", body["error"])
}

func TestRecommendations_RejectsUnknownPriceRange(t *testing.T) {
	router := recommendationsRouter(&stubGenerator{response: `[]`})

	rec := doRequest(t, router, http.MethodPost, "/api/recommendations",
		`{"preferences":{"priceRange":"cheap"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendations_RejectsRatingAboveFive(t *testing.T) {
	router := recommendationsRouter(&stubGenerator{response: `[]`})

	rec := doRequest(t, router, http.MethodPost, "/api/recommendations",
		`{"preferences":{"minRating":7}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendations_RejectsMalformedBody(t *testing.T) {
	router := recommendationsRouter(&stubGenerator{response: `[]`})

	rec := doRequest(t, router, http.MethodPost, "/api/recommendations", `{"preferences":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendations_GenerationFailureStillReturns200(t *testing.T) {
	router := recommendationsRouter(&stubGenerator{err: assert.AnError})

	rec := doRequest(t, router, http.MethodPost, "/api/recommendations",
		`{"preferences":{"categories":["Electronics"]}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "fallback", body["status"])
	assert.Equal(t, "Using rule-based recommendations due to LLM service issues", body["message"])
}

func TestToPreferences_CustomBoundsOnlyWithCustomRange(t *testing.T) {
	prefs := toPreferences(UserPreferencesDTO{
		PriceRange:       "mid",
		CustomPriceRange: &PriceBoundsDTO{Min: 10, Max: 50},
	})

	assert.Nil(t, prefs.CustomPriceRange)

	prefs = toPreferences(UserPreferencesDTO{
		PriceRange:       "custom",
		CustomPriceRange: &PriceBoundsDTO{Min: 10, Max: 50},
	})

	require.NotNil(t, prefs.CustomPriceRange)
	assert.Equal(t, 10.0, prefs.CustomPriceRange.Min)
	assert.Equal(t, 50.0, prefs.CustomPriceRange.Max)
}

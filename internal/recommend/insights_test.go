package recommend

import (
	"testing"

	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractInsights_EmptyHistory(t *testing.T) {
	assert.Nil(t, ExtractInsights(nil))
	assert.Nil(t, ExtractInsights([]catalog.Product{}))
}

func TestExtractInsights_Aggregates(t *testing.T) {
	browsed := []catalog.Product{
		{ID: "prod001", Category: "Electronics", Brand: "SoundCore", Price: 80, Rating: 4.5},
		{ID: "prod005", Category: "Fitness", Brand: "StridePro", Price: 120, Rating: 4.6},
	}

	insights := ExtractInsights(browsed)
	require.NotNil(t, insights)

	assert.Equal(t, "Electronics, Fitness", insights.PrimaryCategories)
	assert.Equal(t, "$100.00", insights.AveragePrice)
	assert.Equal(t, "$80.00 - $120.00", insights.PriceRange)
	assert.Equal(t, "SoundCore, StridePro", insights.PreferredBrands)
	assert.Equal(t, "Average rating viewed: 4.5", insights.QualityPreference)
}

func TestExtractInsights_LimitsToThreeDistinct(t *testing.T) {
	browsed := []catalog.Product{
		{Category: "A", Brand: "W", Price: 10, Rating: 4},
		{Category: "B", Brand: "X", Price: 10, Rating: 4},
		{Category: "B", Brand: "X", Price: 10, Rating: 4},
		{Category: "C", Brand: "Y", Price: 10, Rating: 4},
		{Category: "D", Brand: "Z", Price: 10, Rating: 4},
	}

	insights := ExtractInsights(browsed)
	require.NotNil(t, insights)

	assert.Equal(t, "A, B, C", insights.PrimaryCategories)
	assert.Equal(t, "W, X, Y", insights.PreferredBrands)
}

func TestExtractInsights_SingleProduct(t *testing.T) {
	browsed := []catalog.Product{
		{Category: "Kitchen", Brand: "BrewMaster", Price: 249.99, Rating: 4.8},
	}

	insights := ExtractInsights(browsed)
	require.NotNil(t, insights)

	assert.Equal(t, "$249.99", insights.AveragePrice)
	assert.Equal(t, "$249.99 - $249.99", insights.PriceRange)
}

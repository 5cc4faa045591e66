package recommend

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopsense-ai/recommendation-engine/internal/cache"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResponseCache() (*ResponseCache, *cache.MemoryClient) {
	client := cache.NewMemoryClient(0)
	return NewResponseCache(client, observability.Nop(), time.Minute), client
}

func TestResponseCacheKey_Deterministic(t *testing.T) {
	c, _ := newTestResponseCache()
	prefs := UserPreferences{
		PriceRange: PriceRangeMid,
		Categories: []string{"Electronics", "Kitchen"},
		MinRating:  4.0,
	}

	a := c.Key(prefs, []string{"prod001"})
	b := c.Key(prefs, []string{"prod001"})

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "recommend:response:"))
}

func TestResponseCacheKey_CategoryOrderInsensitive(t *testing.T) {
	c, _ := newTestResponseCache()

	a := c.Key(UserPreferences{Categories: []string{"Electronics", "Kitchen"}}, nil)
	b := c.Key(UserPreferences{Categories: []string{"Kitchen", "Electronics"}}, nil)

	assert.Equal(t, a, b)
}

func TestResponseCacheKey_HistoryOrderSensitive(t *testing.T) {
	c, _ := newTestResponseCache()

	a := c.Key(UserPreferences{}, []string{"prod001", "prod002"})
	b := c.Key(UserPreferences{}, []string{"prod002", "prod001"})

	assert.NotEqual(t, a, b)
}

func TestResponseCacheKey_CustomBoundsChangeKey(t *testing.T) {
	c, _ := newTestResponseCache()

	a := c.Key(UserPreferences{PriceRange: PriceRangeCustom, CustomPriceRange: &PriceBounds{Min: 10, Max: 50}}, nil)
	b := c.Key(UserPreferences{PriceRange: PriceRangeCustom, CustomPriceRange: &PriceBounds{Min: 10, Max: 60}}, nil)

	assert.NotEqual(t, a, b)
}

func TestResponseCache_PutGetRoundTrip(t *testing.T) {
	c, _ := newTestResponseCache()
	ctx := context.Background()

	result := newResult([]Recommendation{{
		Product:         fixtureCatalog()[0],
		Explanation:     "Matches your audio interest",
		ConfidenceScore: 0.9,
	}}, StatusSuccess)
	key := c.Key(UserPreferences{}, nil)

	c.Put(ctx, key, result)
	got := c.Get(ctx, key)

	require.NotNil(t, got)
	assert.Equal(t, StatusSuccess, got.Status)
	require.Equal(t, 1, got.Count)
	assert.Equal(t, "prod001", got.Recommendations[0].Product.ID)
	assert.Equal(t, 0.9, got.Recommendations[0].ConfidenceScore)
}

func TestResponseCache_MissReturnsNil(t *testing.T) {
	c, _ := newTestResponseCache()

	assert.Nil(t, c.Get(context.Background(), c.Key(UserPreferences{}, nil)))
}

func TestResponseCache_CorruptEntryDropped(t *testing.T) {
	c, client := newTestResponseCache()
	ctx := context.Background()
	key := c.Key(UserPreferences{}, nil)

	require.NoError(t, client.Set(ctx, key, []byte("{not json"), time.Minute))

	assert.Nil(t, c.Get(ctx, key))
	_, err := client.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

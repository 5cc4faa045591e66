package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopsense-ai/recommendation-engine/internal/cache"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
)

// ResponseCache caches recommendation results keyed by the normalized
// request. Cache failures are logged and ignored; they never change the
// outcome of a request.
type ResponseCache struct {
	client cache.Client
	logger *observability.Logger
	ttl    time.Duration
}

// NewResponseCache creates a response cache with the given TTL.
func NewResponseCache(client cache.Client, logger *observability.Logger, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResponseCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// Key derives a deterministic key from the preferences and browsing history.
func (c *ResponseCache) Key(prefs UserPreferences, history []string) string {
	prefs = prefs.normalized()

	parts := []string{string(prefs.PriceRange)}

	if prefs.CustomPriceRange != nil {
		parts = append(parts,
			strconv.FormatFloat(prefs.CustomPriceRange.Min, 'f', -1, 64),
			strconv.FormatFloat(prefs.CustomPriceRange.Max, 'f', -1, 64))
	}

	categories := append([]string(nil), prefs.Categories...)
	sort.Strings(categories)
	for _, cat := range categories {
		parts = append(parts, "cat:"+cat)
	}

	brands := append([]string(nil), prefs.Brands...)
	sort.Strings(brands)
	for _, b := range brands {
		parts = append(parts, "brand:"+b)
	}

	parts = append(parts,
		strconv.FormatFloat(prefs.MinRating, 'f', -1, 64),
		prefs.LifestyleType,
		prefs.SpecificNeeds,
		prefs.AdditionalNotes,
	)

	// History order matters: it changes the prompt.
	parts = append(parts, history...)

	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return cache.Key("recommend", "response", hex.EncodeToString(hash[:16]))
}

// Get returns a cached result, or nil on a miss or any cache failure.
func (c *ResponseCache) Get(ctx context.Context, key string) *Result {
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Warn().Err(err).Msg("Response cache read failed")
		}
		return nil
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn().Err(err).Msg("Response cache entry corrupt, dropping")
		_ = c.client.Delete(ctx, key)
		return nil
	}

	return &result
}

// Put stores a result. Failures are logged and swallowed.
func (c *ResponseCache) Put(ctx context.Context, key string, result *Result) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Response cache marshal failed")
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn().Err(err).Msg("Response cache write failed")
	}
}

package recommend

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
)

// productIDPattern matches catalog identifiers embedded in free text.
var productIDPattern = regexp.MustCompile(`prod\d+`)

const (
	defaultConfidence  = 0.5
	textScanConfidence = 0.6

	defaultExplanation  = "Recommended based on your preferences"
	textScanExplanation = "Recommended based on your preferences (parsing error occurred)"
)

// Interpreter turns one raw model response into a validated, catalog-grounded
// result. Three terminal outcomes: structured success, text-scan partial
// success, or an empty error result.
type Interpreter struct {
	store  *catalog.Store
	logger *observability.Logger
	max    int
}

// NewInterpreter creates an interpreter bound to the catalog.
func NewInterpreter(store *catalog.Store, logger *observability.Logger, max int) *Interpreter {
	if max <= 0 {
		max = 5
	}
	return &Interpreter{
		store:  store,
		logger: logger,
		max:    max,
	}
}

// Interpret parses the model response. It never returns an error: failures
// degrade through the text-scan fallback down to an empty error result.
func (it *Interpreter) Interpret(raw string) *Result {
	arrayText, ok := extractJSONArray(raw)
	if !ok {
		it.logger.Warn().Msg("No JSON array found in model response")
		return it.textScan(raw)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(arrayText), &entries); err != nil {
		it.logger.Warn().Err(err).Msg("Model response JSON failed to parse")
		return it.textScan(raw)
	}

	var recs []Recommendation
	seen := make(map[string]struct{})
	for _, entry := range entries {
		var fields map[string]interface{}
		if err := json.Unmarshal(entry, &fields); err != nil {
			// A non-object entry means the array does not follow the
			// output contract at all; this is the terminal outcome.
			result := newResult(nil, StatusError)
			result.Error = fmt.Sprintf("Failed to parse recommendations: %v", err)
			return result
		}

		productID, _ := fields["product_id"].(string)
		product, found := it.store.GetByID(productID)
		if !found {
			it.logger.Warn().Str("product_id", productID).Msg("Model referenced unknown product ID")
			continue
		}

		if _, dup := seen[productID]; dup {
			it.logger.Warn().Str("product_id", productID).Msg("Model repeated a product ID")
			continue
		}
		seen[productID] = struct{}{}

		recs = append(recs, Recommendation{
			Product:         product,
			Explanation:     explanationOrDefault(fields["explanation"]),
			ConfidenceScore: confidenceOrDefault(fields["confidence_score"]),
		})
	}

	if len(recs) > it.max {
		recs = recs[:it.max]
	}

	return newResult(recs, StatusSuccess)
}

// textScan recovers product references from unstructured text. Each match
// gets a fixed confidence and a generic explanation.
func (it *Interpreter) textScan(raw string) *Result {
	var recs []Recommendation
	seen := make(map[string]struct{})

	for _, id := range productIDPattern.FindAllString(raw, -1) {
		if len(recs) == it.max {
			break
		}
		if _, dup := seen[id]; dup {
			continue
		}
		product, found := it.store.GetByID(id)
		if !found {
			continue
		}
		seen[id] = struct{}{}

		recs = append(recs, Recommendation{
			Product:         product,
			Explanation:     textScanExplanation,
			ConfidenceScore: textScanConfidence,
		})
	}

	result := newResult(recs, StatusPartialSuccess)
	result.Error = "JSON parsing failed, extracted from text"
	return result
}

// extractJSONArray locates the first top-level array substring, greedily
// spanning from the first '[' to the last ']'.
func extractJSONArray(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// confidenceOrDefault repairs the confidence score: any missing, non-numeric,
// or out-of-range value falls back to 0.5.
func confidenceOrDefault(v interface{}) float64 {
	c, ok := v.(float64)
	if !ok || c < 0 || c > 1 {
		return defaultConfidence
	}
	return c
}

func explanationOrDefault(v interface{}) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return defaultExplanation
}

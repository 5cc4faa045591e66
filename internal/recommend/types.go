// Package recommend implements the recommendation pipeline: candidate
// pre-filtering, prompt construction, response interpretation, and the
// tiered fallback chain.
package recommend

import (
	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
)

// Status describes how a recommendation result was produced.
type Status string

const (
	// StatusSuccess means the model response parsed as structured JSON.
	StatusSuccess Status = "success"
	// StatusPartialSuccess means recommendations were scraped out of
	// unstructured model text.
	StatusPartialSuccess Status = "partial_success"
	// StatusFallback means the rule-based recommender produced the result.
	StatusFallback Status = "fallback"
	// StatusError means every path failed; the result is empty.
	StatusError Status = "error"
)

// Recommendation is a single catalog-grounded suggestion.
type Recommendation struct {
	Product         catalog.Product `json:"product"`
	Explanation     string          `json:"explanation"`
	ConfidenceScore float64         `json:"confidence_score"`
}

// Result is the ordered outcome of one recommendation request.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
	Status          Status           `json:"status"`
	Message         string           `json:"message,omitempty"`
	Error           string           `json:"error,omitempty"`
}

func newResult(recs []Recommendation, status Status) *Result {
	if recs == nil {
		recs = []Recommendation{}
	}
	return &Result{
		Recommendations: recs,
		Count:           len(recs),
		Status:          status,
	}
}

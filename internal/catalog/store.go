package catalog

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/shopsense-ai/recommendation-engine/internal/observability"
)

// Store holds the in-memory product catalog. Read-only after construction;
// safe for concurrent use.
type Store struct {
	logger   *observability.Logger
	products []Product
	byID     map[string]int
}

// Load reads the catalog from a JSON file. Missing or malformed files
// degrade to an empty catalog so the service can still start.
func Load(path string, logger *observability.Logger) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Product data file unavailable, starting with empty catalog")
		return NewStore(nil, logger)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Invalid JSON in product data file, starting with empty catalog")
		return NewStore(nil, logger)
	}

	logger.Info().Int("count", len(products)).Str("path", path).Msg("Loaded product catalog")
	return NewStore(products, logger)
}

// NewStore creates a store over the given products. Used directly by tests
// with fixture catalogs.
func NewStore(products []Product, logger *observability.Logger) *Store {
	if logger == nil {
		logger = observability.Nop()
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	return &Store{
		logger:   logger,
		products: products,
		byID:     byID,
	}
}

// Len returns the number of products in the catalog.
func (s *Store) Len() int {
	return len(s.products)
}

// All returns the full catalog in load order.
func (s *Store) All() []Product {
	return s.products
}

// GetByID looks up a product by its identifier.
func (s *Store) GetByID(id string) (Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

// Categories returns the distinct product categories, sorted.
func (s *Store) Categories() []string {
	return s.distinct(func(p Product) string { return p.Category })
}

// Brands returns the distinct product brands, sorted.
func (s *Store) Brands() []string {
	return s.distinct(func(p Product) string { return p.Brand })
}

func (s *Store) distinct(field func(Product) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, p := range s.products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// FilterSpec describes a conjunctive product filter.
type FilterSpec struct {
	Categories  []string
	Brands      []string
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	MaxRating   *float64
	InStockOnly bool
	Tags        []string
	SortBy      string // price, rating, inventory, name
	SortOrder   string // asc, desc
	Limit       int
}

// Filter returns the products matching every criterion, sorted
// by the requested field and capped at Limit when positive.
func (s *Store) Filter(spec FilterSpec) []Product {
	var filtered []Product

	for _, p := range s.products {
		if len(spec.Categories) > 0 && !contains(spec.Categories, p.Category) {
			continue
		}

		if len(spec.Brands) > 0 && !contains(spec.Brands, p.Brand) {
			continue
		}

		if spec.MinPrice != nil && p.Price < *spec.MinPrice {
			continue
		}
		if spec.MaxPrice != nil && p.Price > *spec.MaxPrice {
			continue
		}

		if spec.MinRating != nil && p.Rating < *spec.MinRating {
			continue
		}
		if spec.MaxRating != nil && p.Rating > *spec.MaxRating {
			continue
		}

		if spec.InStockOnly && !p.InStock() {
			continue
		}

		if len(spec.Tags) > 0 && !hasAnyTag(p.Tags, spec.Tags) {
			continue
		}

		filtered = append(filtered, p)
	}

	sortProducts(filtered, spec.SortBy, spec.SortOrder)

	if spec.Limit > 0 && len(filtered) > spec.Limit {
		filtered = filtered[:spec.Limit]
	}

	return filtered
}

// searchMatch pairs a product with its relevance score.
type searchMatch struct {
	product Product
	score   int
}

// Search performs case-insensitive substring scoring over the catalog:
// name match weighs 3, description 2, any tag 1 (at most once), category 1.
// Zero-score products are excluded; ties keep catalog order.
func (s *Store) Search(query string, limit int) []Product {
	if query == "" {
		return nil
	}

	q := strings.ToLower(query)
	var matches []searchMatch

	for _, p := range s.products {
		score := 0

		if strings.Contains(strings.ToLower(p.Name), q) {
			score += 3
		}

		if strings.Contains(strings.ToLower(p.Description), q) {
			score += 2
		}

		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				score++
				break
			}
		}

		if strings.Contains(strings.ToLower(p.Category), q) {
			score++
		}

		if score > 0 {
			matches = append(matches, searchMatch{product: p, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]Product, len(matches))
	for i, m := range matches {
		results[i] = m.product
	}
	return results
}

func sortProducts(products []Product, sortBy, sortOrder string) {
	asc := sortOrder == "asc"

	var less func(a, b Product) bool
	switch sortBy {
	case "price":
		less = func(a, b Product) bool { return a.Price < b.Price }
	case "inventory":
		less = func(a, b Product) bool { return a.Inventory < b.Inventory }
	case "name":
		less = func(a, b Product) bool { return a.Name < b.Name }
	default: // rating
		less = func(a, b Product) bool { return a.Rating < b.Rating }
	}

	sort.SliceStable(products, func(i, j int) bool {
		if asc {
			return less(products[i], products[j])
		}
		return less(products[j], products[i])
	})
}

func contains(values []string, v string) bool {
	for _, val := range values {
		if val == v {
			return true
		}
	}
	return false
}

func hasAnyTag(productTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range productTags {
			if t == w {
				return true
			}
		}
	}
	return false
}

// Package catalog provides read-only access to the product catalog.
package catalog

// Product is a single catalog record. Immutable after load.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Inventory   int      `json:"inventory"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Tags        []string `json:"tags"`
}

// InStock reports whether the product has available inventory.
func (p Product) InStock() bool {
	return p.Inventory > 0
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// ProductsHandler serves catalog lookup, filter, and search requests.
type ProductsHandler struct {
	logger   *observability.Logger
	store    *catalog.Store
	validate *validator.Validate
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(logger *observability.Logger, store *catalog.Store) *ProductsHandler {
	return &ProductsHandler{
		logger:   logger,
		store:    store,
		validate: validator.New(),
	}
}

// List handles GET /api/products. Returns the raw catalog array.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.All())
}

// Get handles GET /api/products/{productID}.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	product, ok := h.store.GetByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"product": product,
		"status":  "success",
	})
}

// ProductFilterDTO is the request body for POST /api/products/filter.
type ProductFilterDTO struct {
	Categories  []string `json:"categories"`
	Brands      []string `json:"brands"`
	MinPrice    *float64 `json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice    *float64 `json:"max_price" validate:"omitempty,gte=0"`
	MinRating   *float64 `json:"min_rating" validate:"omitempty,gte=0,lte=5"`
	MaxRating   *float64 `json:"max_rating" validate:"omitempty,gte=0,lte=5"`
	InStockOnly *bool    `json:"in_stock_only"`
	Tags        []string `json:"tags"`
	SortBy      string   `json:"sort_by" validate:"omitempty,oneof=price rating inventory name"`
	SortOrder   string   `json:"sort_order" validate:"omitempty,oneof=asc desc"`
	Limit       int      `json:"limit" validate:"omitempty,gt=0,lte=100"`
}

// Filter handles POST /api/products/filter.
func (h *ProductsHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var dto ProductFilterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validate.Struct(dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	// Unset fields default to rating descending, in-stock only.
	inStock := true
	if dto.InStockOnly != nil {
		inStock = *dto.InStockOnly
	}
	sortBy := dto.SortBy
	if sortBy == "" {
		sortBy = "rating"
	}
	sortOrder := dto.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}

	products := h.store.Filter(catalog.FilterSpec{
		Categories:  dto.Categories,
		Brands:      dto.Brands,
		MinPrice:    dto.MinPrice,
		MaxPrice:    dto.MaxPrice,
		MinRating:   dto.MinRating,
		MaxRating:   dto.MaxRating,
		InStockOnly: inStock,
		Tags:        dto.Tags,
		SortBy:      sortBy,
		SortOrder:   sortOrder,
		Limit:       dto.Limit,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
		"status":   "success",
	})
}

// Search handles GET /api/products/search?query=&limit=.
func (h *ProductsHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required", "")
		return
	}

	limit := defaultSearchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxSearchLimit {
			writeError(w, http.StatusBadRequest, "invalid limit", "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	products := h.store.Search(query, limit)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
		"query":    query,
		"status":   "success",
	})
}

// Categories handles GET /api/categories.
func (h *ProductsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := h.store.Categories()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
		"status":     "success",
	})
}

// Brands handles GET /api/brands.
func (h *ProductsHandler) Brands(w http.ResponseWriter, r *http.Request) {
	brands := h.store.Brands()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"brands": brands,
		"count":  len(brands),
		"status": "success",
	})
}

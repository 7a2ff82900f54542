package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cartwheel-io/storefront/internal/catalog"
	"github.com/cartwheel-io/storefront/internal/domain"
	"github.com/cartwheel-io/storefront/pkg/httputil"
	"github.com/cartwheel-io/storefront/pkg/pagination"
)

// CatalogHandler handles HTTP requests for product and category endpoints.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(c *catalog.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: c,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products
//
// Supports ?category= (category slug), ?sort_by=, ?page= and ?per_page=.
// An unknown category yields an empty page rather than an error.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	sortBy := r.URL.Query().Get("sort_by")
	if !domain.IsValidSortBy(sortBy) {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: "sort_by must be one of: price_asc, price_desc, name_asc, name_desc, rating",
			},
		})
		return
	}

	filter := catalog.Filter{
		Category: r.URL.Query().Get("category"),
		SortBy:   sortBy,
		Page:     params.Page,
		PerPage:  params.PerPage,
	}

	products, total, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pagination.NewResult(products, total, params))
}

// GetProduct handles GET /api/v1/products/{idOrSlug}
//
// Accepts either a product ID or a URL slug; IDs are tried first.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")
	if idOrSlug == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product id or slug is required"},
		})
		return
	}

	product, err := h.catalog.Get(r.Context(), idOrSlug)
	if err != nil {
		product, err = h.catalog.GetBySlug(r.Context(), idOrSlug)
	}
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.catalog.Categories(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

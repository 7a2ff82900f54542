package catalog

import (
	"context"
	"sort"

	"github.com/cartwheel-io/storefront/internal/domain"
	apperrors "github.com/cartwheel-io/storefront/pkg/errors"
	"github.com/cartwheel-io/storefront/pkg/slug"
)

// Filter defines criteria for listing products. Category matches the
// category slug; an empty value matches everything.
type Filter struct {
	Category string
	SortBy   string
	Page     int
	PerPage  int
}

// Catalog serves the built-in demo product set. The data is fixed at
// construction and nothing mutates it at runtime, so reads need no locking.
type Catalog struct {
	products   []domain.Product
	byID       map[string]int
	bySlug     map[string]int
	categories []domain.Category
}

// New builds the catalog from the seed data.
func New() *Catalog {
	products := seedProducts()

	c := &Catalog{
		products: products,
		byID:     make(map[string]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}

	seen := make(map[string]bool)
	for i, p := range products {
		c.byID[p.ID] = i
		c.bySlug[p.Slug] = i
		if !seen[p.Category] {
			seen[p.Category] = true
			catSlug := slug.Generate(p.Category)
			c.categories = append(c.categories, domain.Category{
				ID:   catSlug,
				Name: p.Category,
				Slug: catSlug,
			})
		}
	}
	sort.Slice(c.categories, func(i, j int) bool {
		return c.categories[i].Name < c.categories[j].Name
	})

	return c
}

// Get retrieves a product by its unique identifier.
func (c *Catalog) Get(ctx context.Context, id string) (*domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	p := c.products[i]
	return &p, nil
}

// GetBySlug retrieves a product by its URL-friendly slug.
func (c *Catalog) GetBySlug(ctx context.Context, s string) (*domain.Product, error) {
	i, ok := c.bySlug[s]
	if !ok {
		return nil, apperrors.NotFound("product", s)
	}
	p := c.products[i]
	return &p, nil
}

// List returns the page of products matching the filter along with the total
// number of matches. An unknown category yields an empty result, not an
// error.
func (c *Catalog) List(ctx context.Context, filter Filter) ([]domain.Product, int, error) {
	if !domain.IsValidSortBy(filter.SortBy) {
		return nil, 0, apperrors.InvalidInput("invalid sort_by value")
	}

	matched := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if filter.Category != "" && slug.Generate(p.Category) != filter.Category {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, filter.SortBy)

	total := len(matched)
	page := filter.Page
	perPage := filter.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = len(c.products)
	}

	start := (page - 1) * perPage
	if start >= total {
		return []domain.Product{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// Categories returns all categories present in the catalog, sorted by name.
func (c *Catalog) Categories(ctx context.Context) []domain.Category {
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// sortProducts orders products in place. The empty sort keeps seed order.
func sortProducts(products []domain.Product, sortBy string) {
	switch sortBy {
	case domain.SortByPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].UnitPrice < products[j].UnitPrice })
	case domain.SortByPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].UnitPrice > products[j].UnitPrice })
	case domain.SortByNameAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	case domain.SortByNameDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name > products[j].Name })
	case domain.SortByRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	}
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cartwheel-io/storefront/internal/cart"
	"github.com/cartwheel-io/storefront/internal/domain"
	apperrors "github.com/cartwheel-io/storefront/pkg/errors"
)

// ProductCatalog resolves product IDs to catalog entries.
type ProductCatalog interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// CartService implements the business logic for cart operations. It resolves
// products against the catalog, snapshots the fields the cart needs and
// applies the mutation to the store. Everything past the catalog lookup is
// total: unknown cart lines are defined no-ops, not failures, so those
// operations return the resulting view unconditionally.
type CartService struct {
	catalog ProductCatalog
	store   *cart.Store
	logger  *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(catalog ProductCatalog, store *cart.Store, logger *slog.Logger) *CartService {
	return &CartService{
		catalog: catalog,
		store:   store,
		logger:  logger,
	}
}

// AddItem adds one unit of the product to the cart. The product must exist
// in the catalog; its name and price are captured at this moment and stay
// frozen on the cart line from then on.
func (s *CartService) AddItem(ctx context.Context, productID string) (domain.CartView, error) {
	if productID == "" {
		return domain.CartView{}, apperrors.InvalidInput("product id is required")
	}

	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("resolve product: %w", err)
	}

	s.store.AddItem(cart.AddItemInput{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.UnitPrice,
		ImageURL:  product.ImageURL,
	})

	view := s.store.View()

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("product_id", product.ID),
		slog.Int("total_count", view.TotalCount),
	)

	return view, nil
}

// SetQuantity sets the absolute quantity of a cart line. Zero or negative
// removes the line; a product that is not in the cart stays out of it.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) domain.CartView {
	s.store.SetQuantity(productID, quantity)

	view := s.store.View()

	s.logger.InfoContext(ctx, "cart item quantity set",
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
		slog.Int("total_count", view.TotalCount),
	)

	return view
}

// RemoveItem removes the product's line from the cart, whatever its
// quantity. Removing a product that is not in the cart changes nothing.
func (s *CartService) RemoveItem(ctx context.Context, productID string) domain.CartView {
	s.store.RemoveItem(productID)

	view := s.store.View()

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("product_id", productID),
		slog.Int("total_count", view.TotalCount),
	)

	return view
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) domain.CartView {
	s.store.Clear()

	s.logger.InfoContext(ctx, "cart cleared")

	return s.store.View()
}

// View returns the current cart state without modifying anything.
func (s *CartService) View(ctx context.Context) domain.CartView {
	return s.store.View()
}

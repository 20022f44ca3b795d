package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/repo"
)

// Line is one cart entry with its product reference resolved against the
// catalog. Product is nil when the reference dangles (only mutating
// operations return such lines; PruneAndGet never does).
type Line struct {
	Product  *models.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

type ReplaceLine struct {
	Product  uuid.UUID `json:"product"`
	Quantity int       `json:"quantity"`
}

type CartService struct {
	Repo *repo.GormRepo
}

// PruneAndGet loads the user's cart and resolves every line. Lines whose
// product no longer exists are dropped, and when any line was dropped the
// pruned set is persisted before returning, so a fetched cart is always
// fully resolvable. The write side effect is the point: the read heals the
// cart rather than hiding dangling references.
func (s *CartService) PruneAndGet(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	l := logging.FromContext(ctx).With("svc", "cart.get")

	cart, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return []Line{}, nil
	}

	products, err := s.resolve(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	kept := make([]models.CartItem, 0, len(cart.Items))
	lines := make([]Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		prod, ok := products[item.ProductID]
		if !ok {
			continue
		}
		kept = append(kept, models.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
		lines = append(lines, Line{Product: prod, Quantity: item.Quantity})
	}

	if len(kept) != len(cart.Items) {
		l.Info("cart_pruned", "user_id", userID, "dropped", len(cart.Items)-len(kept))
		if _, err := s.Repo.SaveCartItems(ctx, userID, kept); err != nil {
			return nil, err
		}
	}

	return lines, nil
}

// Add merges into an existing line for the product by incrementing its
// quantity; a cart never holds two lines for the same product.
func (s *CartService) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) ([]Line, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("%w: Product ID is required", ErrValidation)
	}
	if quantity < 1 {
		quantity = 1
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return nil, fmt.Errorf("%w: Product not found", ErrNotFound)
	}

	cart, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if cart != nil {
		items = cart.Items
	}

	merged := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	return s.saveResolved(ctx, userID, items)
}

// SetQuantity replaces the line's quantity with the exact given value; a
// value of zero or less removes the line instead of persisting it.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) ([]Line, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("%w: Product ID and quantity are required", ErrValidation)
	}

	cart, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("%w: Cart not found", ErrNotFound)
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: Product not found in cart", ErrNotFound)
	}

	items := cart.Items
	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}

	return s.saveResolved(ctx, userID, items)
}

func (s *CartService) Remove(ctx context.Context, userID, productID uuid.UUID) ([]Line, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("%w: Cart not found", ErrNotFound)
	}

	items := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	if len(items) == len(cart.Items) {
		return nil, fmt.Errorf("%w: Product not found in cart", ErrNotFound)
	}

	return s.saveResolved(ctx, userID, items)
}

// Clear always succeeds, creating the cart row if absent.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	if _, err := s.Repo.SaveCartItems(ctx, userID, nil); err != nil {
		return nil, err
	}
	return []Line{}, nil
}

// Replace trusts the caller's full line set verbatim: neither product
// existence nor quantities are checked here, which is deliberately weaker
// than Add/SetQuantity. Dangling entries it lets in are healed by the next
// PruneAndGet; non-positive quantities are stored as given.
func (s *CartService) Replace(ctx context.Context, userID uuid.UUID, lines []ReplaceLine) ([]Line, error) {
	items := make([]models.CartItem, 0, len(lines))
	for _, ln := range lines {
		items = append(items, models.CartItem{ProductID: ln.Product, Quantity: ln.Quantity})
	}
	return s.saveResolved(ctx, userID, items)
}

func (s *CartService) saveResolved(ctx context.Context, userID uuid.UUID, items []models.CartItem) ([]Line, error) {
	cart, err := s.Repo.SaveCartItems(ctx, userID, items)
	if err != nil {
		return nil, err
	}

	products, err := s.resolve(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, Line{Product: products[item.ProductID], Quantity: item.Quantity})
	}
	return lines, nil
}

func (s *CartService) resolve(ctx context.Context, items []models.CartItem) (map[uuid.UUID]*models.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return s.Repo.ProductsByIDs(ctx, ids)
}

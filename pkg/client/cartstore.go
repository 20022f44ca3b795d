package client

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/models"
	"storefront/internal/service"
)

// CartStore mirrors the server-side cart. Every mutation goes through
// three phases: the loading flag is set, the request runs, and the
// authoritative item list from the response replaces the local one.
// On failure the previous items are kept and the error message is
// retained until the next operation starts.
type CartStore struct {
	client *Client

	mu      sync.Mutex
	items   []service.Line
	loading bool
	errMsg  string
}

// State is a point-in-time snapshot of the store. Totals are derived
// from the item list on every read.
type State struct {
	Items      []service.Line
	Loading    bool
	Err        string
	TotalItems int
	TotalPrice float64
}

func NewCartStore(c *Client) *CartStore {
	return &CartStore{client: c}
}

func (s *CartStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]service.Line, len(s.items))
	copy(items, s.items)

	var count int
	var total float64
	for _, line := range items {
		count += line.Quantity
		if line.Product != nil {
			total += line.Product.Price * float64(line.Quantity)
		}
	}
	return State{
		Items:      items,
		Loading:    s.loading,
		Err:        s.errMsg,
		TotalItems: count,
		TotalPrice: math.Round(total*100) / 100,
	}
}

// Refresh pulls the cart from the server.
func (s *CartStore) Refresh(ctx context.Context) error {
	s.begin()
	items, err := s.client.GetCart(ctx)
	return s.settle(items, err)
}

// Add applies an optimistic local line immediately, then reconciles
// with the server response. On failure the optimistic change is rolled
// back to the prior item list.
func (s *CartStore) Add(ctx context.Context, product *models.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	prior := make([]service.Line, len(s.items))
	copy(prior, s.items)

	merged := false
	for i := range s.items {
		if s.items[i].Product != nil && s.items[i].Product.ID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, service.Line{Product: product, Quantity: quantity})
	}
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	items, err := s.client.AddToCart(ctx, product.ID, quantity)
	if err != nil {
		s.mu.Lock()
		s.items = prior
		s.loading = false
		s.errMsg = err.Error()
		s.mu.Unlock()
		return err
	}
	return s.settle(items, nil)
}

// SetQuantity changes a line to an exact count. A target of zero or
// less removes the line via the remove endpoint instead.
func (s *CartStore) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}
	s.begin()
	items, err := s.client.UpdateQuantity(ctx, productID, quantity)
	return s.settle(items, err)
}

func (s *CartStore) Remove(ctx context.Context, productID uuid.UUID) error {
	s.begin()
	items, err := s.client.RemoveFromCart(ctx, productID)
	return s.settle(items, err)
}

func (s *CartStore) Clear(ctx context.Context) error {
	s.begin()
	items, err := s.client.ClearCart(ctx)
	return s.settle(items, err)
}

func (s *CartStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *CartStore) settle(items []service.Line, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.items = items
	s.errMsg = ""
	return nil
}

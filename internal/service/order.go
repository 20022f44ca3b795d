package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
	"storefront/internal/repo"
)

type OrderProduct struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type CreateOrderRequest struct {
	Products []OrderProduct `json:"products"`
	Amount   float64        `json:"amount"`
}

type OrderService struct {
	Repo *repo.GormRepo
}

// CreateOrder stores the caller's snapshot as-is. The amount is trusted,
// not recomputed from the lines.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest, userID uuid.UUID) (*models.Order, error) {
	items := make([]models.OrderItem, 0, len(req.Products))
	for _, p := range req.Products {
		if p.ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: productId required", ErrValidation)
		}
		if p.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		items = append(items, models.OrderItem{ProductID: p.ProductID, Quantity: p.Quantity})
	}

	order := &models.Order{
		UserID:   userID,
		Products: items,
		Amount:   req.Amount,
		Status:   models.OrderStatusCreated,
	}

	return s.Repo.CreateOrder(ctx, order)
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}

// CancelOrder is a one-way transition: a Cancelled order can never be
// reopened, and cancelling it again is a conflict.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID uuid.UUID) error {
	order, err := s.Repo.GetOrder(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: Order not found", ErrNotFound)
		}
		return err
	}

	if order.Status == models.OrderStatusCancelled {
		return fmt.Errorf("%w: Order already cancelled", ErrConflict)
	}

	return s.Repo.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled)
}

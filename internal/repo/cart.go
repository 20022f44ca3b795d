package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// GetCart returns nil without error when the user has no cart row yet; an
// empty cart is a valid, non-persisted default.
func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// SaveCartItems replaces the whole item set of the user's cart in one
// transaction, creating the cart row if absent. This mirrors a
// single-document write: concurrent callers are last-write-wins, with no
// ordering guarantee between them.
func (r *GormRepo) SaveCartItems(ctx context.Context, userID uuid.UUID, items []models.CartItem) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ID = uuid.Nil
			items[i].CartID = cart.ID
			items[i].Position = i
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		cart.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

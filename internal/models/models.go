package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"       json:"id"`
	Name         string    `gorm:"not null"         json:"name"`
	Email        string    `gorm:"unique;not null"  json:"email"`
	PasswordHash string    `gorm:"not null"         json:"-"`
	IsAdmin      bool      `gorm:"default:false"    json:"isAdmin"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID          uuid.UUID `gorm:"primaryKey"       json:"id"`
	ProductID   string    `gorm:"unique;not null"  json:"productId"`
	Name        string    `gorm:"not null"         json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"         json:"price"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ProductID == "" {
		p.ProductID = uuid.NewString()
	}
	return nil
}

// Cart holds one row per user; its items are replaced as a whole set on
// every mutation, so concurrent writers are last-write-wins.
type Cart struct {
	ID     uuid.UUID  `gorm:"primaryKey"           json:"id"`
	UserID uuid.UUID  `gorm:"uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID"    json:"items"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uuid.UUID `gorm:"primaryKey"     json:"id"`
	CartID    uuid.UUID `gorm:"index;not null" json:"-"`
	ProductID uuid.UUID `gorm:"not null"       json:"product_id"`
	Quantity  int       `gorm:"default:1"      json:"quantity"`
	Position  int       `gorm:"not null"       json:"-"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

const (
	OrderStatusCreated   = "Created"
	OrderStatusCancelled = "Cancelled"
)

// Order is a point-in-time snapshot: its items reference products by id
// only and are never kept in sync with the catalog or the cart.
type Order struct {
	ID        uuid.UUID   `gorm:"primaryKey"         json:"id"`
	UserID    uuid.UUID   `gorm:"index;not null"     json:"user_id"`
	Products  []OrderItem `gorm:"foreignKey:OrderID" json:"products"`
	Amount    float64     `gorm:"not null"           json:"amount"`
	Status    string      `gorm:"not null"           json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusCreated
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"primaryKey"     json:"-"`
	OrderID   uuid.UUID `gorm:"index;not null" json:"-"`
	ProductID uuid.UUID `gorm:"not null"       json:"productId"`
	Quantity  int       `gorm:"default:1"      json:"quantity"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

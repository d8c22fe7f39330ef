package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is immutable once created: there is no update path, only reads.
type Order struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string          `gorm:"not null;index" json:"user_id"`
	Completed    bool            `json:"completed"`
	Paid         bool            `json:"paid"`
	PaymentRef   string          `json:"payment_ref"`
	ShippingCost decimal.Decimal `gorm:"type:numeric(12,2)" json:"shipping_cost"`
	Lines        []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrderLine references its product by id only; no price is stored on the
// line. Read paths derive the price from the product's current catalog
// price.
type OrderLine struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}

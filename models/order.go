package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical storefront flow)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by the shop
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the decks
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before shipping, or voided orphan

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        string          `gorm:"not null;index" json:"user_id"`
	User          User            `gorm:"foreignKey:UserID" json:"user"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_amount"`
	Status        OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	OrderRef      string          `gorm:"uniqueIndex" json:"order_ref"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderItem is an immutable snapshot row: Price is frozen at checkout so later
// catalog edits never change what a historical order was worth.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index" json:"order_id"`
	DeckID    uint            `json:"deck_id"`
	DeckName  string          `json:"deck_name"`
	DeckImage string          `json:"deck_image"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Quantity  int             `json:"quantity"`
}

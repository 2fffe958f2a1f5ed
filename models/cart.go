package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"`                                   // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`   // Cascade delete items if cart is deleted
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem carries no price snapshot: the deck is joined live on every read so
// the cart always shows the current catalog price. Only OrderItem freezes a
// price, at checkout.
type CartItem struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	CartID   uint      `gorm:"index;uniqueIndex:idx_cart_deck" json:"cart_id"` // one row per (cart, deck)
	DeckID   uint      `gorm:"uniqueIndex:idx_cart_deck" json:"deck_id"`
	Quantity int       `gorm:"not null" json:"quantity"`
	Deck     Deck      `gorm:"foreignKey:DeckID" json:"deck"`
	AddedAt  time.Time `json:"added_at"`
}

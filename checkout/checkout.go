package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rodrigo-toledo-alt/proxydeck-api/cartstore"
	"github.com/rodrigo-toledo-alt/proxydeck-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotAuthenticated mirrors the cart store's sentinel so callers can
	// match either layer with one errors.Is check.
	ErrNotAuthenticated = cartstore.ErrNotAuthenticated

	// ErrEmptyCart is returned when checkout finds zero items in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// Receipt is returned to the caller once an order is fully persisted.
type Receipt struct {
	OrderID  uint            `json:"order_id"`
	OrderRef string          `json:"order_ref"`
	Total    decimal.Decimal `json:"total"`
}

type Service struct {
	db    *gorm.DB
	carts *cartstore.Store
}

func NewService(db *gorm.DB, carts *cartstore.Store) *Service {
	return &Service{db: db, carts: carts}
}

// Checkout turns the user's cart into an immutable order. The steps run in a
// strict sequence: order header first, then the item snapshots, and only once
// those are confirmed persisted is the cart cleared. Clearing earlier would
// risk losing the shopper's items with no order to show for it. A header
// whose item insert failed stays behind as a pending order with zero items;
// VoidOrphanedOrders picks those up.
func (s *Service) Checkout(userID string) (*Receipt, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	items, err := s.carts.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// A deck that vanished from the catalog joins as a zero value, so its
	// line contributes zero rather than failing the whole checkout.
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Deck.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	order := models.Order{
		UserID:        userID,
		TotalAmount:   total,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		OrderRef:      generateOrderRef(),
		CreatedAt:     time.Now(),
	}
	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, models.OrderItem{
			OrderID:   order.ID,
			DeckID:    it.DeckID,
			DeckName:  it.Deck.Name,
			DeckImage: it.Deck.Image,
			Price:     it.Deck.Price, // frozen here, never recomputed
			Quantity:  it.Quantity,
		})
	}
	if err := s.db.Create(&orderItems).Error; err != nil {
		return nil, fmt.Errorf("persisting items for order %d: %w", order.ID, err)
	}

	if err := s.carts.ClearCart(userID); err != nil {
		return nil, fmt.Errorf("clearing cart after order %d: %w", order.ID, err)
	}

	return &Receipt{OrderID: order.ID, OrderRef: order.OrderRef, Total: total}, nil
}

// VoidOrphanedOrders cancels pending order headers that have no item rows and
// are older than grace. These are the leftovers of a checkout that failed
// between the header insert and the item insert. Returns how many were voided.
func (s *Service) VoidOrphanedOrders(grace time.Duration) (int64, error) {
	cutoff := time.Now().Add(-grace)
	res := s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Where("created_at <= ?", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM order_items WHERE order_items.order_id = orders.id)").
		Update("status", models.OrderStatusCancelled)
	return res.RowsAffected, res.Error
}

// Order ref example: 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

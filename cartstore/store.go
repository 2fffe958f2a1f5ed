package cartstore

import (
	"errors"
	"time"

	"github.com/rodrigo-toledo-alt/proxydeck-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotAuthenticated is returned by any operation that needs a user session
// and finds none.
var ErrNotAuthenticated = errors.New("not authenticated")

// Store is the server-side cart scoped to one authenticated user. Every
// mutation is persisted immediately; callers re-read after writing rather
// than holding state.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetOrCreateCartID returns the id of the user's cart, creating the row on
// first use. The insert is conflict-safe on the user_id unique index, so two
// concurrent logins cannot end up with two carts.
func (s *Store) GetOrCreateCartID(userID string) (uint, error) {
	if userID == "" {
		return 0, ErrNotAuthenticated
	}

	cart := models.Cart{UserID: userID}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 && cart.CartID != 0 {
		return cart.CartID, nil
	}

	// Conflict path: the cart already existed, fetch its id.
	if err := s.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return 0, err
	}
	return cart.CartID, nil
}

// GetCart returns the user's cart lines joined with live deck data, oldest
// row first. An unauthenticated session or a user without a cart gets an
// empty slice, not an error.
func (s *Store) GetCart(userID string) ([]models.CartItem, error) {
	if userID == "" {
		return []models.CartItem{}, nil
	}

	var cart models.Cart
	err := s.db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	items := []models.CartItem{}
	if err := s.db.Preload("Deck").
		Where("cart_id = ?", cart.CartID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart adds qty of a deck to the user's cart. If the deck already has a
// row the quantity is incremented in the same statement, so two rapid adds
// cannot lose an update.
func (s *Store) AddToCart(userID string, deckID uint, qty int) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	if qty < 1 {
		qty = 1
	}

	cartID, err := s.GetOrCreateCartID(userID)
	if err != nil {
		return err
	}

	item := models.CartItem{
		CartID:   cartID,
		DeckID:   deckID,
		Quantity: qty,
		AddedAt:  time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "deck_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", qty),
			"added_at": time.Now(),
		}),
	}).Create(&item).Error
}

// UpdateQuantity sets the quantity on a cart row; anything below one removes
// the row instead. The row must belong to the user's cart.
func (s *Store) UpdateQuantity(userID string, itemID uint, qty int) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	if qty < 1 {
		return s.RemoveItem(userID, itemID)
	}
	return s.db.Model(&models.CartItem{}).
		Where("id = ? AND cart_id IN (?)", itemID, s.userCartIDs(userID)).
		Update("quantity", qty).Error
}

// RemoveItem deletes one cart row. Deleting a row that is already gone is
// treated as success.
func (s *Store) RemoveItem(userID string, itemID uint) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	return s.db.
		Where("id = ? AND cart_id IN (?)", itemID, s.userCartIDs(userID)).
		Delete(&models.CartItem{}).Error
}

// ClearCart deletes all items under the user's cart. No-op (success) when no
// session or no cart exists.
func (s *Store) ClearCart(userID string) error {
	if userID == "" {
		return nil
	}
	var cart models.Cart
	err := s.db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

func (s *Store) userCartIDs(userID string) *gorm.DB {
	return s.db.Model(&models.Cart{}).Select("cart_id").Where("user_id = ?", userID)
}

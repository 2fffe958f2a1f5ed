package localcart

import (
	"encoding/json"

	"github.com/rodrigo-toledo-alt/proxydeck-api/models"
	"github.com/shopspring/decimal"
)

// Store is the anonymous cart: an ordered list of line items serialized as a
// single JSON record under one fixed key in the injected KV backend. A record
// that is missing or fails to parse is treated as an empty cart, never as an
// error.
type Store struct {
	kv  KV
	key string
}

func NewStore(kv KV, key string) *Store {
	return &Store{kv: kv, key: key}
}

// Key returns the storage key for a guest's cart record.
func Key(guestID string) string {
	return "cart_" + guestID
}

// Load returns the current items, oldest first. Corrupt or unreadable records
// normalize to an empty slice.
func (s *Store) Load() []models.LocalCartItem {
	raw, ok := s.kv.Get(s.key)
	if !ok || raw == "" {
		return []models.LocalCartItem{}
	}
	var items []models.LocalCartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []models.LocalCartItem{}
	}
	return items
}

func (s *Store) save(items []models.LocalCartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Set(s.key, string(raw))
}

// Add appends a new line for the deck, or bumps the quantity of the existing
// one. Name, price and image are display snapshots taken at add time.
func (s *Store) Add(deckID uint, name string, price decimal.Decimal, imageURL string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	items := s.Load()
	for i := range items {
		if items[i].DeckID == deckID {
			items[i].Quantity += qty
			return s.save(items)
		}
	}
	items = append(items, models.LocalCartItem{
		DeckID:   deckID,
		Quantity: qty,
		Name:     name,
		Price:    price,
		ImageURL: imageURL,
	})
	return s.save(items)
}

// UpdateQuantity sets the quantity for a deck's line; anything below one
// removes the line entirely. Updating an absent deck is a no-op.
func (s *Store) UpdateQuantity(deckID uint, qty int) error {
	items := s.Load()
	if qty < 1 {
		kept := items[:0]
		for _, it := range items {
			if it.DeckID != deckID {
				kept = append(kept, it)
			}
		}
		return s.save(kept)
	}
	for i := range items {
		if items[i].DeckID == deckID {
			items[i].Quantity = qty
			break
		}
	}
	return s.save(items)
}

// Remove drops the deck's line if present.
func (s *Store) Remove(deckID uint) error {
	items := s.Load()
	kept := items[:0]
	for _, it := range items {
		if it.DeckID != deckID {
			kept = append(kept, it)
		}
	}
	return s.save(kept)
}

// Clear deletes the whole record.
func (s *Store) Clear() error {
	return s.kv.Delete(s.key)
}

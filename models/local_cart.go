package models

import "github.com/shopspring/decimal"

// LocalCartItem is one line of the anonymous cart record kept in the
// device-local key-value store. Name, price and image are display snapshots
// taken at add time; the authoritative values live in the deck catalog and are
// re-resolved once the items land in a remote cart.
type LocalCartItem struct {
	DeckID   uint            `json:"deck_id"`
	Quantity int             `json:"quantity"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url,omitempty"`
}

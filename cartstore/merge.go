package cartstore

import (
	"log"

	"github.com/rodrigo-toledo-alt/proxydeck-api/localcart"
)

// Adder is the remote side of a merge. *Store satisfies it.
type Adder interface {
	AddToCart(userID string, deckID uint, qty int) error
}

// MergeResult records the outcome of transferring one anonymous line item.
type MergeResult struct {
	DeckID   uint  `json:"deck_id"`
	Quantity int   `json:"quantity"`
	Err      error `json:"-"`
}

// MergeLocalCart drains the anonymous cart into the user's remote cart, one
// item at a time. A failed item is logged and skipped rather than aborting
// the rest: one stale deck must not strand the whole cart. The local record
// is cleared unconditionally after the loop so a stale anonymous cart never
// resurfaces on later logins.
//
// Returns one result per attempted item; nil when the local cart was empty.
func MergeLocalCart(local *localcart.Store, remote Adder, userID string) []MergeResult {
	items := local.Load()
	if len(items) == 0 {
		return nil
	}

	results := make([]MergeResult, 0, len(items))
	for _, it := range items {
		err := remote.AddToCart(userID, it.DeckID, it.Quantity)
		if err != nil {
			log.Printf("cart merge: deck %d for user %s: %v", it.DeckID, userID, err)
		}
		results = append(results, MergeResult{DeckID: it.DeckID, Quantity: it.Quantity, Err: err})
	}

	if err := local.Clear(); err != nil {
		log.Printf("cart merge: clearing local cart for user %s: %v", userID, err)
	}
	return results
}

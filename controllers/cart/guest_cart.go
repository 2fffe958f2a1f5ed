package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rodrigo-toledo-alt/proxydeck-api/localcart"
	"github.com/rodrigo-toledo-alt/proxydeck-api/models"
	"gorm.io/gorm"
)

// The guest cart lives in the device-local key-value store, one record per
// guest id, not in the database. These handlers are the server-side face of
// that store during anonymous browsing; on login the record is merged into
// the user's remote cart and destroyed.

func guestStore(c *gin.Context, kv localcart.KV) (*localcart.Store, bool) {
	guestID := c.Query("guest_id")
	if guestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
		return nil, false
	}
	return localcart.NewStore(kv, localcart.Key(guestID)), true
}

// GET /guest/cart
func GetGuestCart(kv localcart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, kv)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, store.Load())
	}
}

// POST /guest/cart
func AddGuestCartItem(db *gorm.DB, kv localcart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, kv)
		if !ok {
			return
		}

		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// The local record snapshots name/price/image for display while the
		// shopper stays anonymous.
		var deck models.Deck
		if err := db.First(&deck, "id = ?", input.DeckID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Deck does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate deck"})
			}
			return
		}

		if err := store.Add(deck.ID, deck.Name, deck.Price, deck.Image, input.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to guest cart"})
			return
		}
		c.JSON(http.StatusOK, store.Load())
	}
}

// PATCH /guest/cart/:deck_id
func UpdateGuestCartItem(kv localcart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, kv)
		if !ok {
			return
		}

		deckID, err := strconv.ParseUint(c.Param("deck_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deck_id"})
			return
		}

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := store.UpdateQuantity(uint(deckID), *input.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update guest cart item"})
			return
		}
		c.JSON(http.StatusOK, store.Load())
	}
}

// DELETE /guest/cart/:deck_id
func DeleteGuestCartItem(kv localcart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, kv)
		if !ok {
			return
		}

		deckID, err := strconv.ParseUint(c.Param("deck_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deck_id"})
			return
		}

		if err := store.Remove(uint(deckID)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Guest cart item deleted"})
	}
}

// DELETE /guest/cart
func ClearGuestCart(kv localcart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, kv)
		if !ok {
			return
		}

		if err := store.Clear(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear guest cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Guest cart cleared"})
	}
}

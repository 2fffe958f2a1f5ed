package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/rodrigo-toledo-alt/proxydeck-api/controllers/cart"
	deckController "github.com/rodrigo-toledo-alt/proxydeck-api/controllers/deck"
	"github.com/rodrigo-toledo-alt/proxydeck-api/localcart"
	"gorm.io/gorm"
)

// SetupGuestRoutes registers the anonymous-shopper endpoints. The cart lives
// in the local key-value store scoped by guest_id; the catalog is the same
// one the user routes expose, public for anonymous browsing.
func SetupGuestRoutes(r *gin.Engine, db *gorm.DB, guestCarts localcart.KV) {
	guestGroup := r.Group("/guest")
	{
		cartGroup := guestGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetGuestCart(guestCarts))                      // GET /guest/cart
			cartGroup.POST("/", cartControllers.AddGuestCartItem(db, guestCarts))             // POST /guest/cart
			cartGroup.PATCH("/:deck_id", cartControllers.UpdateGuestCartItem(guestCarts))     // PATCH /guest/cart/:deck_id
			cartGroup.DELETE("/:deck_id", cartControllers.DeleteGuestCartItem(guestCarts))    // DELETE /guest/cart/:deck_id
			cartGroup.DELETE("/", cartControllers.ClearGuestCart(guestCarts))                 // DELETE /guest/cart
		}

		guestGroup.GET("/decks", deckController.GetDecks(db))        // GET /guest/decks
		guestGroup.GET("/decks/:id", deckController.GetDeckByID(db)) // GET /guest/decks/:id
		guestGroup.GET("/games", deckController.GetAllGames(db))     // GET /guest/games
	}
}

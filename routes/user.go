package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/rodrigo-toledo-alt/proxydeck-api/controllers/cart"
	deckController "github.com/rodrigo-toledo-alt/proxydeck-api/controllers/deck"
	orderControllers "github.com/rodrigo-toledo-alt/proxydeck-api/controllers/order"
	userControllers "github.com/rodrigo-toledo-alt/proxydeck-api/controllers/user"
	"github.com/rodrigo-toledo-alt/proxydeck-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))                  // GET /user/cart
			cartGroup.POST("/", cartControllers.AddCartItem(db))                 // POST /user/cart
			cartGroup.PATCH("/:item_id", cartControllers.UpdateCartItem(db))     // PATCH /user/cart/:item_id
			cartGroup.DELETE("/:item_id", cartControllers.DeleteCartItem(db))    // DELETE /user/cart/:item_id
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))             // DELETE /user/cart
		}

		// ──────────────── Checkout & Orders ────────────────
		userGroup.POST("/checkout", orderControllers.CheckoutHandler(db))  // POST /user/checkout
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db)) // GET /user/orders

		// ──────────────── Browse Catalog ────────────────
		userGroup.GET("/decks", deckController.GetDecks(db))        // GET /user/decks
		userGroup.GET("/decks/:id", deckController.GetDeckByID(db)) // GET /user/decks/:id
		userGroup.GET("/games", deckController.GetAllGames(db))     // GET /user/games
	}
}

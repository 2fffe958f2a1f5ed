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

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Client Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Deck Management ───────────
		deckAdmin := adminGroup.Group("/decks")
		{
			deckAdmin.POST("", deckController.CreateDeck(db))
			deckAdmin.PUT("/:id", deckController.UpdateDeck(db))
			deckAdmin.GET("", deckController.GetDecks(db))
			deckAdmin.DELETE("/:id", deckController.DeleteDeck(db))
			deckAdmin.GET("/export-excel", deckController.ExportDecksToExcel(db))
		}

		// ─────────── Game Management ───────────
		gameAdmin := adminGroup.Group("/games")
		{
			gameAdmin.POST("", deckController.CreateGame(db))
			gameAdmin.PUT("/:id", deckController.UpdateGame(db))
			gameAdmin.GET("", deckController.GetAllGames(db))
			gameAdmin.DELETE("/:id", deckController.DeleteGame(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orderAdmin.POST("/void-orphans", orderControllers.VoidOrphanedOrdersHandler(db))
		}

		// ─────────── Cart Peek ───────────
		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}
	}
}

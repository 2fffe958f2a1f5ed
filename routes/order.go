package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/rodrigo-toledo-alt/proxydeck-api/controllers/order"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// websocket endpoint for real-time new-order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)
	}
}

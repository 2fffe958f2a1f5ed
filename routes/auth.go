package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rodrigo-toledo-alt/proxydeck-api/auth"
	"github.com/rodrigo-toledo-alt/proxydeck-api/localcart"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, guestCarts localcart.KV) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))

		// Login merges the guest cart into the user cart when the request
		// carries a guest_id.
		authGroup.POST("/login", auth.Login(db, guestCarts))

		authGroup.POST("/guest", auth.CreateGuestUser(db))
	}
}

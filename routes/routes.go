package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rodrigo-toledo-alt/proxydeck-api/localcart"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up Auth, Guest, User,
// Admin and Order route groups. guestCarts is the key-value backend the
// anonymous carts live in.
func SetupRoutes(r *gin.Engine, db *gorm.DB, guestCarts localcart.KV) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, guestCarts)

	// Guest routes (guest_id scoped, anonymous cart)
	SetupGuestRoutes(r, db, guestCarts)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)

	// Order feed
	SetupOrderRoutes(r, db)
}

package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rodrigo-toledo-alt/proxydeck-api/cartstore"
	"github.com/rodrigo-toledo-alt/proxydeck-api/localcart"
	"github.com/rodrigo-toledo-alt/proxydeck-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const userSessionTTL = 24 * time.Hour

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	GuestID  string `json:"guest_id"` // optional: merge this guest's cart on login
}

// POST /auth/register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: string(hashed),
			Name:         strings.TrimSpace(req.Name),
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email, "name": user.Name})
	}
}

// POST /auth/login
// On success the shopper's anonymous cart (if a guest_id is supplied) is
// merged into their remote cart. The merge is best-effort: the response
// reports how many items landed and how many were dropped, but a merge
// problem never fails the login itself.
func Login(db *gorm.DB, guestCarts localcart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		mergeStatus := "no-guest-cart"
		merged, dropped := 0, 0
		if req.GuestID != "" {
			store := localcart.NewStore(guestCarts, localcart.Key(req.GuestID))
			results := cartstore.MergeLocalCart(store, cartstore.New(db), user.ID)
			for _, r := range results {
				if r.Err != nil {
					dropped++
				} else {
					merged++
				}
			}
			switch {
			case len(results) == 0:
				mergeStatus = "guest-cart-empty"
			case dropped == 0:
				mergeStatus = "merged"
			default:
				mergeStatus = "merged-with-failures"
			}
		}

		token, err := issueToken(user.ID, "user", userSessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"token":        token,
			"user":         gin.H{"id": user.ID, "email": user.Email, "name": user.Name},
			"merge_status": mergeStatus,
			"merged":       merged,
			"dropped":      dropped,
		})
	}
}

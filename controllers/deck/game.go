package deckController

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rodrigo-toledo-alt/proxydeck-api/models"
	"gorm.io/gorm"
)

type GameInput struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

// POST /admin/games
func CreateGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input GameInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		game := models.Game{Name: input.Name, Image: input.Image}
		if err := db.Create(&game).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
			return
		}
		c.JSON(http.StatusCreated, game)
	}
}

// GET /user/games, /admin/games
func GetAllGames(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var games []models.Game
		if err := db.Order("name ASC").Find(&games).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch games"})
			return
		}
		c.JSON(http.StatusOK, games)
	}
}

// PUT /admin/games/:id
func UpdateGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
			return
		}

		var game models.Game
		if err := db.First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve game"})
			}
			return
		}

		var input GameInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		game.Name = input.Name
		game.Image = input.Image
		if err := db.Save(&game).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
			return
		}
		c.JSON(http.StatusOK, game)
	}
}

// DELETE /admin/games/:id
func DeleteGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
			return
		}

		result := db.Delete(&models.Game{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete game"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
	}
}

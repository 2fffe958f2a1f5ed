package deckController

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rodrigo-toledo-alt/proxydeck-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DeckInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Image       string          `json:"image"`
	GameIDs     []uint          `json:"game_ids"`
	Cards       []CardInput     `json:"cards"`
}

type CardInput struct {
	Name      string `json:"name" binding:"required"`
	ImagePath string `json:"image_path"`
	Position  int    `json:"position"`
}

// GetDecks returns the catalog, newest first. Optional ?game_id= filter.
// URL: GET /user/decks
func GetDecks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Games").Order("created_at DESC")

		if gameIDStr := c.Query("game_id"); gameIDStr != "" {
			gameID, err := strconv.ParseUint(gameIDStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game_id"})
				return
			}
			query = query.
				Joins("JOIN deck_games ON deck_games.deck_id = decks.id").
				Where("deck_games.game_id = ?", gameID)
		}

		var decks []models.Deck
		if err := query.Find(&decks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch decks"})
			return
		}
		c.JSON(http.StatusOK, decks)
	}
}

// GetDeckByID returns one deck with its games and full card list (in deck
// order), which the front-end uses for the per-card hover previews.
// URL: GET /user/decks/:id
func GetDeckByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deck ID"})
			return
		}

		var deck models.Deck
		err = db.Preload("Games").
			Preload("Cards", func(db *gorm.DB) *gorm.DB {
				return db.Order("position ASC")
			}).
			First(&deck, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve deck"})
			}
			return
		}
		c.JSON(http.StatusOK, deck)
	}
}

// CreateDeck creates a deck together with its card list.
// URL: POST /admin/decks
func CreateDeck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input DeckInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		games, err := resolveGames(db, input.GameIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		deck := models.Deck{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Image:       input.Image,
			Games:       games,
		}
		for _, card := range input.Cards {
			deck.Cards = append(deck.Cards, models.Card{
				Name:      card.Name,
				ImagePath: card.ImagePath,
				Position:  card.Position,
			})
		}

		if err := db.Create(&deck).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deck"})
			return
		}
		c.JSON(http.StatusCreated, deck)
	}
}

// UpdateDeck replaces the deck's fields and, when cards are supplied, its
// whole card list.
// URL: PUT /admin/decks/:id
func UpdateDeck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deck ID"})
			return
		}

		var deck models.Deck
		if err := db.First(&deck, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve deck"})
			}
			return
		}

		var input DeckInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		games, err := resolveGames(db, input.GameIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			deck.Name = input.Name
			deck.Description = input.Description
			deck.Price = input.Price
			deck.Image = input.Image
			if err := tx.Save(&deck).Error; err != nil {
				return err
			}
			if err := tx.Model(&deck).Association("Games").Replace(games); err != nil {
				return err
			}
			if input.Cards != nil {
				if err := tx.Where("deck_id = ?", deck.ID).Delete(&models.Card{}).Error; err != nil {
					return err
				}
				for _, card := range input.Cards {
					row := models.Card{
						DeckID:    deck.ID,
						Name:      card.Name,
						ImagePath: card.ImagePath,
						Position:  card.Position,
					}
					if err := tx.Create(&row).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deck"})
			return
		}
		c.JSON(http.StatusOK, deck)
	}
}

// DeleteDeck soft-deletes a deck; historical orders keep their snapshots and
// cart rows referencing it simply join an empty deck from then on.
// URL: DELETE /admin/decks/:id
func DeleteDeck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deck ID"})
			return
		}

		result := db.Delete(&models.Deck{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deck"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deck deleted"})
	}
}

func resolveGames(db *gorm.DB, ids []uint) ([]models.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var games []models.Game
	if err := db.Where("id IN ?", ids).Find(&games).Error; err != nil {
		return nil, errors.New("failed to resolve games")
	}
	if len(games) != len(ids) {
		return nil, errors.New("one or more game_ids do not exist")
	}
	return games, nil
}

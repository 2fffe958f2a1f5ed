package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Deck struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `json:"image"` // cover image served from /uploads
	Games       []Game          `gorm:"many2many:deck_games;" json:"games"`
	Cards       []Card          `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE" json:"cards"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Card is one entry of a deck's card list. The storefront uses ImagePath for
// the per-card hover preview on the deck detail page.
type Card struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	DeckID    uint   `gorm:"index" json:"deck_id"`
	Name      string `gorm:"not null" json:"name"`
	ImagePath string `json:"image_path"`
	Position  int    `json:"position"` // order within the deck list
}

// Game groups decks by the card game they proxy (MTG, Pokemon, ...).
type Game struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"unique;not null" json:"name"`
	Image string `json:"image"`
}

package models

import "time"

type User struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"unique;not null" json:"email"`
	PasswordHash string  `json:"-"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Address      Address `gorm:"embedded" json:"address"` // Embeds address fields directly
	Cart         Cart    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders       []Order `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders"`
	CreatedAt    time.Time `json:"created_at"`
}

// Address model embedded in User
type Address struct {
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}

package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	TimeMinutes int       `json:"time_minutes"`
	Price       float64   `gorm:"type:decimal(5,2)" json:"price"`
	Link        string    `gorm:"size:255" json:"link,omitempty"`
	ImageURL    string    `json:"image,omitempty"`

	User        *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients" json:"ingredients"`
	Timestamp
}

package entities

import (
	"github.com/google/uuid"
)

type Ingredient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Quantity    *int      `json:"quantity,omitempty"`
	Measurement *string   `gorm:"size:50" json:"measurement,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

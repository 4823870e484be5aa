package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name        string     `gorm:"size:255" json:"name"`
	Password    string     `gorm:"not null" json:"-"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `gorm:"type:timestamp" json:"last_login,omitempty"`

	Timestamp
}

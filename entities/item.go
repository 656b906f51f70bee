package entities

import (
	"github.com/google/uuid"
	"time"
)

type Item struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"` // Makanan Berat, Roti & Kue, Cemilan, Minuman, Bahan Mentah
	Price      float64   `json:"price"`
	Stock      int       `json:"stock"`
	ExpiryDate time.Time `json:"expiry_date"`
	ImageURL   string    `json:"image_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
	Role     string    `json:"role"` // buyer, seller

	// Seller profile. StoreName being set is what makes an account a store.
	StoreName      string   `json:"store_name,omitempty"`
	WhatsappNumber string   `json:"whatsapp_number,omitempty"`
	OpeningHour    string   `json:"opening_hour,omitempty"`
	ClosingHour    string   `json:"closing_hour,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Balance        float64  `json:"balance"`

	Items       []*Item       `gorm:"foreignKey:UserID"`
	Withdrawals []*Withdrawal `gorm:"foreignKey:UserID"`
	Timestamp
}

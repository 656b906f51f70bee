package entities

import (
	"github.com/google/uuid"
)

type Withdrawal struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Amount float64   `json:"amount"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

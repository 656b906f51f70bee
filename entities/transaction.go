package entities

import (
	"github.com/google/uuid"
)

type Transaction struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ItemID   uuid.UUID `json:"item_id"`
	BuyerID  uuid.UUID `json:"buyer_id"`
	SellerID uuid.UUID `json:"seller_id"`

	// Item snapshot taken at order time, never recomputed.
	ItemName  string  `json:"item_name"`
	ItemPrice float64 `json:"item_price"`
	ItemImage string  `json:"item_image,omitempty"`

	Quantity      int     `json:"quantity"`
	TotalPrice    float64 `json:"total_price"`
	UniqueCode    string  `gorm:"uniqueIndex" json:"unique_code"`
	Status        string  `json:"status"`         // pending, completed, cancelled
	PaymentStatus string  `json:"payment_status"` // unpaid, paid

	Item   *Item `gorm:"foreignKey:ItemID"`
	Buyer  *User `gorm:"foreignKey:BuyerID"`
	Seller *User `gorm:"foreignKey:SellerID"`
	Timestamp
}

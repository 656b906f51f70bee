package domain

import (
	"time"
)

var (
	MessageSuccessGetCatalog = "catalog retrieved successfully"
	MessageFailedGetCatalog  = "failed to retrieve catalog"
)

// UnknownDistance sorts coordinate-less rows behind every located one.
const UnknownDistance = 9999.0

type (
	// DiscountedItem is one row of the catalog view: an item joined with
	// the fields of the store selling it.
	DiscountedItem struct {
		ID             string    `json:"id"`
		UserID         string    `json:"user_id"`
		Name           string    `json:"name"`
		Category       string    `json:"category"`
		Price          float64   `json:"price"`
		Stock          int       `json:"stock"`
		ExpiryDate     time.Time `json:"expiry_date"`
		ImageURL       string    `json:"image_url,omitempty"`
		StoreName      string    `json:"store_name"`
		WhatsappNumber string    `json:"whatsapp_number,omitempty"`
		OpeningHour    string    `json:"opening_hour,omitempty"`
		ClosingHour    string    `json:"closing_hour,omitempty"`
		Latitude       *float64  `json:"latitude,omitempty"`
		Longitude      *float64  `json:"longitude,omitempty"`
	}

	CatalogQuery struct {
		Search    string
		Category  string
		Latitude  *float64
		Longitude *float64
	}

	CatalogItemResponse struct {
		DiscountedItem
		SalePrice  float64  `json:"sale_price"`
		DistanceKm *float64 `json:"distance_km,omitempty"`
	}
)

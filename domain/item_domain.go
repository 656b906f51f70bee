package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	CategoryMakananBerat = "Makanan Berat"
	CategoryRotiKue      = "Roti & Kue"
	CategoryCemilan      = "Cemilan"
	CategoryMinuman      = "Minuman"
	CategoryBahanMentah  = "Bahan Mentah"

	// Catalog sale price is always half of the listed price.
	DiscountRate = 0.5

	MaxImageSize = 2 * 1024 * 1024
)

var Categories = []string{
	CategoryMakananBerat,
	CategoryRotiKue,
	CategoryCemilan,
	CategoryMinuman,
	CategoryBahanMentah,
}

var (
	MessageSuccessAddItem      = "item added successfully"
	MessageSuccessUpdateItem   = "item updated successfully"
	MessageSuccessDeleteItem   = "item deleted successfully"
	MessageSuccessGetItems     = "items retrieved successfully"
	MessageSuccessUploadImage  = "item image uploaded successfully"
	MessageSuccessCleanExpired = "expired items cleaned successfully"
	MessageSuccessGetDashboard = "dashboard statistics retrieved successfully"

	MessageFailedAddItem      = "failed to add item"
	MessageFailedUpdateItem   = "failed to update item"
	MessageFailedDeleteItem   = "failed to delete item"
	MessageFailedGetItems     = "failed to retrieve items"
	MessageFailedUploadImage  = "failed to upload item image"
	MessageFailedCleanExpired = "failed to clean expired items"
	MessageFailedGetDashboard = "failed to retrieve dashboard statistics"

	ErrItemNotFound    = errors.New("item not found")
	ErrNotItemOwner    = errors.New("unauthorized access to item")
	ErrInvalidCategory = errors.New("invalid item category")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrNegativeStock   = errors.New("stock must not be negative")
	ErrExpiredItem     = errors.New("expiry date is already in the past")
	ErrInvalidExpiry   = errors.New("invalid expiry date")
	ErrImageTooLarge   = errors.New("image exceeds maximum size of 2MB")
)

type (
	AddItemRequest struct {
		Name       string  `json:"name" validate:"required"`
		Category   string  `json:"category" validate:"required"`
		Price      float64 `json:"price" validate:"required"`
		Stock      int     `json:"stock" validate:"min=0"`
		ExpiryDate string  `json:"expiry_date" validate:"required"`
	}

	UpdateItemRequest struct {
		Name       string   `json:"name" validate:"omitempty"`
		Category   string   `json:"category" validate:"omitempty"`
		Price      *float64 `json:"price" validate:"omitempty"`
		Stock      *int     `json:"stock" validate:"omitempty"`
		ExpiryDate string   `json:"expiry_date" validate:"omitempty"`
	}

	UploadItemImageRequest struct {
		ItemID string                `json:"item_id" form:"item_id" validate:"required,uuid"`
		Image  *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ItemResponse struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Category   string    `json:"category"`
		Price      float64   `json:"price"`
		SalePrice  float64   `json:"sale_price"`
		Stock      int       `json:"stock"`
		ExpiryDate time.Time `json:"expiry_date"`
		ImageURL   string    `json:"image_url,omitempty"`
		CreatedAt  time.Time `json:"created_at"`
	}

	CategoryPotential struct {
		Category  string  `json:"category"`
		Potential float64 `json:"potential"`
	}

	DashboardStatsResponse struct {
		TotalMenus       int                 `json:"total_menus"`
		TotalStock       int                 `json:"total_stock"`
		RevenuePotential float64             `json:"revenue_potential"`
		ByCategory       []CategoryPotential `json:"by_category"`
	}

	CleanExpiredResponse struct {
		RemovedItems int `json:"removed_items"`
	}
)

package domain

import (
	"errors"
)

var (
	MessageSuccessRegister      = "account registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessGetMe         = "profile retrieved successfully"
	MessageSuccessUpdateProfile = "store settings saved successfully"

	MessageFailedRegister      = "failed to register account"
	MessageFailedLogin         = "failed to login"
	MessageFailedGetMe         = "failed to retrieve profile"
	MessageFailedUpdateProfile = "failed to save store settings"

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrCredentialsInvalid     = errors.New("invalid email or password")
	ErrUserNotFound           = errors.New("user not found")
	ErrNotASeller             = errors.New("account is not a store")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Role     string `json:"role" validate:"required,oneof=buyer seller"`

		// Required for sellers only, checked in the service.
		StoreName      string `json:"store_name" validate:"omitempty"`
		WhatsappNumber string `json:"whatsapp_number" validate:"omitempty"`
	}

	RegisterResponse struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		Role      string `json:"role"`
		StoreName string `json:"store_name,omitempty"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateProfileRequest struct {
		StoreName      string   `json:"store_name" validate:"omitempty"`
		WhatsappNumber string   `json:"whatsapp_number" validate:"omitempty"`
		OpeningHour    string   `json:"opening_hour" validate:"omitempty"`
		ClosingHour    string   `json:"closing_hour" validate:"omitempty"`
		Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
		Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
	}

	UserResponse struct {
		ID             string   `json:"id"`
		Email          string   `json:"email"`
		Role           string   `json:"role"`
		StoreName      string   `json:"store_name,omitempty"`
		WhatsappNumber string   `json:"whatsapp_number,omitempty"`
		OpeningHour    string   `json:"opening_hour,omitempty"`
		ClosingHour    string   `json:"closing_hour,omitempty"`
		Latitude       *float64 `json:"latitude,omitempty"`
		Longitude      *float64 `json:"longitude,omitempty"`
		Balance        float64  `json:"balance"`
	}
)

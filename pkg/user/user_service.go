package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"resq-food-backend/domain"
	"resq-food-backend/entities"
	"resq-food-backend/internal/utils/mailing"
	"resq-food-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyRegistered
	}

	if req.Role == domain.RoleSeller && (req.StoreName == "" || req.WhatsappNumber == "") {
		return domain.RegisterResponse{}, domain.ErrNotASeller
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
	}
	if req.Role == domain.RoleSeller {
		user.StoreName = req.StoreName
		user.WhatsappNumber = req.WhatsappNumber
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterResponse{}, err
	}

	go func() {
		body := fmt.Sprintf("<p>Selamat datang di ResQ-Food, %s!</p>", user.Email)
		if user.Role == domain.RoleSeller {
			body = fmt.Sprintf("<p>Toko <b>%s</b> berhasil dibuat. Selamat berjualan!</p>", user.StoreName)
		}
		if err := mailing.SendMail(user.Email, "Selamat Datang di ResQ-Food", body); err != nil {
			log.Printf("failed to send welcome email to %s: %v", user.Email, err)
		}
	}()

	return domain.RegisterResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Role:      user.Role,
		StoreName: user.StoreName,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)

	return domain.LoginResponse{
		Token: token,
		Role:  user.Role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	return domain.UserResponse{
		ID:             user.ID.String(),
		Email:          user.Email,
		Role:           user.Role,
		StoreName:      user.StoreName,
		WhatsappNumber: user.WhatsappNumber,
		OpeningHour:    user.OpeningHour,
		ClosingHour:    user.ClosingHour,
		Latitude:       user.Latitude,
		Longitude:      user.Longitude,
		Balance:        user.Balance,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if req.StoreName != "" {
		user.StoreName = req.StoreName
	}
	if req.WhatsappNumber != "" {
		user.WhatsappNumber = req.WhatsappNumber
	}
	if req.OpeningHour != "" {
		user.OpeningHour = req.OpeningHour
	}
	if req.ClosingHour != "" {
		user.ClosingHour = req.ClosingHour
	}
	if req.Latitude != nil {
		user.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		user.Longitude = req.Longitude
	}

	return s.userRepository.UpdateUser(ctx, user)
}

package config

import (
	"context"
	"os"
	"resq-food-backend/internal/api/handlers"
	"resq-food-backend/internal/api/routes"
	"resq-food-backend/internal/middleware"
	"resq-food-backend/internal/utils"
	"resq-food-backend/internal/utils/cache"
	"resq-food-backend/internal/utils/storage"
	"resq-food-backend/pkg/catalog"
	"resq-food-backend/pkg/item"
	"resq-food-backend/pkg/jwt"
	"resq-food-backend/pkg/payment"
	"resq-food-backend/pkg/transaction"
	"resq-food-backend/pkg/user"
	"resq-food-backend/pkg/wallet"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	catalogCache := cache.NewRedisCache(
		utils.GetConfig("REDIS_ADDR"),
		utils.GetConfig("REDIS_PASSWORD"),
	)

	// Repository
	userRepository := user.NewUserRepository(db)
	itemRepository := item.NewItemRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)
	transactionRepository := transaction.NewTransactionRepository(db)
	walletRepository := wallet.NewWalletRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	itemService := item.NewItemService(itemRepository, s3)
	catalogService := catalog.NewCatalogService(catalogRepository, catalogCache)
	paymentService := payment.NewPaymentService()
	transactionService := transaction.NewTransactionService(
		transactionRepository,
		itemRepository,
		userRepository,
		paymentService,
	)
	walletService := wallet.NewWalletService(walletRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	itemHandler := handlers.NewItemHandler(itemService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, validator)
	walletHandler := handlers.NewWalletHandler(walletService)

	// nightly sweep of expired listings
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 1 * * *", func() {
		removed, err := itemService.CleanAllExpired(context.Background())
		if err != nil {
			log.Errorf("expired item sweep failed: %v", err)
			return
		}
		if removed > 0 {
			log.Infof("expired item sweep removed %d items", removed)
		}
	}); err != nil {
		return nil, err
	}
	scheduler.Start()

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		ItemHandler:        itemHandler,
		CatalogHandler:     catalogHandler,
		TransactionHandler: transactionHandler,
		WalletHandler:      walletHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

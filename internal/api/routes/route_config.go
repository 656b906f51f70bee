package routes

import (
	"resq-food-backend/internal/api/handlers"
	"resq-food-backend/internal/middleware"
	"resq-food-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	ItemHandler        handlers.ItemHandler
	CatalogHandler     handlers.CatalogHandler
	TransactionHandler handlers.TransactionHandler
	WalletHandler      handlers.WalletHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Catalog()
	c.Items()
	c.Orders()
	c.Cashier()
	c.Wallet()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfile)
	}
}

func (c *Config) Catalog() {
	// Browsing is open, buying is not.
	c.App.Get("/api/v1/catalog", c.CatalogHandler.GetCatalog)
}

func (c *Config) Items() {
	items := c.App.Group("/api/v1/items",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.SellerOnly(),
	)
	items.Get("/dashboard", c.ItemHandler.GetDashboardStats)
	items.Post("/clean-expired", c.ItemHandler.CleanExpired)

	items.Post("", c.ItemHandler.AddItem)
	items.Get("", c.ItemHandler.GetItems)
	items.Get("/:id", c.ItemHandler.GetItemDetails)
	items.Put("/:id", c.ItemHandler.UpdateItem)
	items.Delete("/:id", c.ItemHandler.DeleteItem)

	items.Post("/image", c.ItemHandler.UploadItemImage)
}

func (c *Config) Orders() {
	orders := c.App.Group("/api/v1/orders", c.Middleware.AuthMiddleware(c.JWTService))
	orders.Post("", c.TransactionHandler.CreateOrder)
	orders.Get("", c.TransactionHandler.GetOrders)
	orders.Post("/:id/cancel", c.TransactionHandler.CancelOrder)
}

func (c *Config) Cashier() {
	cashier := c.App.Group("/api/v1/cashier",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.SellerOnly(),
	)
	cashier.Get("/tickets/:code", c.TransactionHandler.CheckTicket)
	cashier.Post("/redeem", c.TransactionHandler.RedeemTicket)
}

func (c *Config) Wallet() {
	wallet := c.App.Group("/api/v1/wallet",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.SellerOnly(),
	)
	wallet.Get("", c.WalletHandler.GetWallet)
	wallet.Post("/withdraw", c.WalletHandler.Withdraw)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
	c.App.Post("/webhook/midtrans", c.TransactionHandler.PaymentWebhook)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supplychain-service/internal/api/http/handlers"
	"github.com/spec-kit/supplychain-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Products          *handlers.ProductsHandler
	Deals             *handlers.DealsHandler
	Uploads           *handlers.UploadsHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/sign-in", cfg.Auth.SignIn)
	app.Post("/sign-out", cfg.Auth.SignOut)
	app.Get("/check-session", cfg.Auth.CheckSession)
	app.Post("/update-settings", cfg.SessionMiddleware.Handle, cfg.Auth.UpdateSettings)

	app.Post("/add-product", cfg.Products.AddProduct)
	app.Post("/update-product-status", cfg.Products.UpdateProductStatus)
	app.Get("/products", cfg.Products.ListProducts)

	app.Post("/create-deal", cfg.Deals.CreateDeal)
	app.Get("/deals", cfg.Deals.ListDeals)

	app.Post("/get-presigned-url", cfg.Uploads.GetPresignedURL)
}

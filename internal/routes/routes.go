package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/handlers"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/middleware"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/services"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, otpService *services.OTPService,
	authService *services.AuthService, tokenService *services.TokenService) {

	healthHandler := handlers.NewHealthHandler("1.0.0")
	listingHandler := handlers.NewListingHandler(store)
	otpHandler := handlers.NewOTPHandler(otpService)
	authHandler := handlers.NewAuthHandler(authService)

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)

	// Public listing routes
	listings := api.Group("/listings")
	listings.Get("/", listingHandler.GetListings)
	listings.Get("/options", listingHandler.GetListingOptions)

	// Owner routes must be registered before the :id wildcard
	listings.Get("/mine", middleware.Protected(tokenService), listingHandler.GetMyListings)
	listings.Get("/:id", listingHandler.GetListing)

	listings.Post("/", middleware.Protected(tokenService), listingHandler.CreateListing)
	listings.Put("/:id", middleware.Protected(tokenService), listingHandler.UpdateListing)
	listings.Post("/:id/sold", middleware.Protected(tokenService), listingHandler.MarkSold)
	listings.Delete("/:id", middleware.Protected(tokenService), listingHandler.DeleteListing)

	// Phone verification routes
	otp := api.Group("/otp", middleware.Protected(tokenService))
	otp.Post("/send", otpHandler.SendCode)
	otp.Post("/verify", otpHandler.VerifyCode)
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/database"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/config"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/jobs"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/logger"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/routes"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/services"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/storage"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer func() { _ = logger.Close() }()

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}
	if cfg.OTPEchoCodes && cfg.Environment == "production" {
		logger.Fatal("OTP_ECHO_CODES must not be enabled in production")
	}

	// Initialize storage
	var store storage.Store
	if cfg.UseMemoryStore {
		logger.Warn("using in-memory storage (not for production)")
		store = storage.NewMemoryStore()
	} else {
		if err := database.Connect(); err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		if err := database.DB.AutoMigrate(
			&models.User{},
			&models.Listing{},
			&models.OTP{},
		); err != nil {
			logger.Fatal("database migration failed", zap.Error(err))
		}
		store = storage.NewDatabaseStore(database.DB)
	}

	// SMS dispatch: Twilio when configured, log-only otherwise (dev only)
	var notifier services.Notifier
	twilioService, err := services.NewTwilioService(cfg.Twilio)
	if err != nil {
		if cfg.Environment == "production" {
			logger.Fatal("Twilio initialization failed", zap.Error(err))
		}
		logger.Warn("Twilio not configured, SMS will be logged", zap.Error(err))
		notifier = services.LogNotifier{}
	} else {
		notifier = twilioService
	}

	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(store, tokenService)
	otpService := services.NewOTPService(store, notifier, cfg.OTPEchoCodes)

	cleanupJob := jobs.NewCleanupJob(store)
	cleanupJob.Start()

	app := fiber.New(fiber.Config{
		AppName: "Wheel Deals Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	routes.SetupRoutes(app, store, otpService, authService, tokenService)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("shutting down")
		cleanupJob.Stop()
		_ = app.Shutdown()
	}()

	logger.Info("starting Wheel Deals backend",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment))

	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

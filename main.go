package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/streamdesk/agency_backend/config"
	"github.com/streamdesk/agency_backend/controllers"
	"github.com/streamdesk/agency_backend/jobs/cron"
	"github.com/streamdesk/agency_backend/middleware"
	"github.com/streamdesk/agency_backend/repositories"
	"github.com/streamdesk/agency_backend/routes"
	"github.com/streamdesk/agency_backend/services"
	"github.com/streamdesk/agency_backend/utils"
	"github.com/streamdesk/agency_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Initialize Firebase
	config.InitFirebase()

	// Connect to Redis
	redisClient := config.ConnectRedis()

	// Connect to Firestore
	client := config.ConnectDB()

	// Initialize the Sheets client (nil when sync is not configured)
	sheetsClient := config.InitSheets()

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: []string{"*"}, // Configure this based on your needs
		AllowInlineJS:  false,
		AllowEval:      false,
	}))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "StreamDesk Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	e.Use(httpsRedirect())

	// Initialize repositories
	userRepo := repositories.NewUserRepository(client)
	streamerRepo := repositories.NewStreamerRepository(client)
	commissionRepo := repositories.NewCommissionRepository(client)
	agencyRepo := repositories.NewAgencyRepository(client)
	reportRepo := repositories.NewReportRepository(client)

	// Initialize services
	googleAuth := services.NewGoogleAuthService()
	gasService := services.NewGASService()
	sheetsService := services.NewSheetsService(sheetsClient)
	syncService := services.NewSyncService(streamerRepo, commissionRepo, sheetsService, redisClient, wsHub)

	// Initialize controllers
	authController := controllers.NewAuthController(userRepo, googleAuth)
	streamerController := controllers.NewStreamerController(streamerRepo, redisClient)
	commissionController := controllers.NewCommissionController(commissionRepo, streamerRepo, agencyRepo, userRepo, redisClient, wsHub)
	agencyController := controllers.NewAgencyController(agencyRepo)
	gasController := controllers.NewGASController(gasService)
	syncController := controllers.NewSyncController(syncService)
	reportController := controllers.NewReportController(reportRepo, streamerRepo, commissionRepo, redisClient)

	// Register routes
	routes.RegisterAuthRoutes(e, authController)
	routes.RegisterStreamerRoutes(e, streamerController)
	routes.RegisterCommissionRoutes(e, commissionController)
	routes.RegisterAgencyRoutes(e, agencyController)
	routes.RegisterGASRoutes(e, gasController)
	routes.RegisterSyncRoutes(e, syncController)
	routes.RegisterReportRoutes(e, reportController)
	routes.RegisterWebSocketRoute(e, wsHub)

	// Purge expired tokens from the blacklist
	go middleware.CleanupBlacklist()

	// Daily sheet mirror
	if sheetsService.Enabled() {
		sheetSyncJob := cron.NewSheetSyncJob(syncService)
		go sheetSyncJob.Process()
	}

	// Ensure upload directories exist
	if err := utils.InitializeStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

func httpsRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Forwarded-Proto") == "http" {
				return c.Redirect(301, "https://"+c.Request().Host+c.Request().RequestURI)
			}
			return next(c)
		}
	}
}

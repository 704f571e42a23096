package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/controllers"
	"github.com/streamdesk/agency_backend/middleware"
	"github.com/streamdesk/agency_backend/models"
)

// RegisterAuthRoutes wires login, logout and user management endpoints
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	auth := e.Group("/api/auth")

	// Public endpoints
	auth.POST("/bootstrap", authController.Bootstrap)
	auth.POST("/login", authController.Login)
	auth.POST("/google", authController.GoogleLogin)

	// Authenticated endpoints
	protected := e.Group("/api/auth")
	protected.Use(middleware.JWTMiddleware())
	protected.POST("/logout", authController.Logout)
	protected.GET("/me", authController.Me)
	protected.POST("/fcm-token", authController.RegisterFCMToken)

	// User management, admin only
	users := e.Group("/api/users")
	users.Use(middleware.JWTMiddleware())
	users.Use(middleware.RequireRole(models.RoleAdmin))
	users.POST("", authController.CreateUser)
}

package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/controllers"
	"github.com/streamdesk/agency_backend/middleware"
)

// RegisterGASRoutes wires the Apps Script proxy endpoint
func RegisterGASRoutes(e *echo.Echo, gasController *controllers.GASController) {
	gas := e.Group("/api/gas")
	gas.Use(middleware.JWTMiddleware())

	gas.GET("", gasController.Proxy)
	gas.POST("", gasController.Proxy)
}

package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/controllers"
	"github.com/streamdesk/agency_backend/middleware"
	"github.com/streamdesk/agency_backend/models"
)

// RegisterAgencyRoutes wires agency tenant endpoints
func RegisterAgencyRoutes(e *echo.Echo, agencyController *controllers.AgencyController) {
	agencies := e.Group("/api/agencies")
	agencies.Use(middleware.JWTMiddleware())

	agencies.GET("", agencyController.ListAgencies)
	agencies.GET("/:id", agencyController.GetAgency)

	writes := e.Group("/api/agencies")
	writes.Use(middleware.JWTMiddleware())
	writes.Use(middleware.RequireRole(models.RoleAdmin))
	writes.POST("", agencyController.CreateAgency)
	writes.PUT("/:id", agencyController.UpdateAgency)
	writes.DELETE("/:id", agencyController.DeleteAgency)
}

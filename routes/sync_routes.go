package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/controllers"
	"github.com/streamdesk/agency_backend/middleware"
	"github.com/streamdesk/agency_backend/models"
)

// RegisterSyncRoutes wires the sheets mirror endpoints
func RegisterSyncRoutes(e *echo.Echo, syncController *controllers.SyncController) {
	sync := e.Group("/api/sync")
	sync.Use(middleware.JWTMiddleware())

	sync.GET("/status", syncController.GetSyncStatus)

	run := e.Group("/api/sync")
	run.Use(middleware.JWTMiddleware())
	run.Use(middleware.RequireRole(models.RoleAdmin))
	run.POST("/run", syncController.RunSync)
}

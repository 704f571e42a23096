package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/controllers"
	"github.com/streamdesk/agency_backend/middleware"
	"github.com/streamdesk/agency_backend/models"
)

// RegisterStreamerRoutes wires the streamer roster endpoints
func RegisterStreamerRoutes(e *echo.Echo, streamerController *controllers.StreamerController) {
	streamers := e.Group("/api/streamers")
	streamers.Use(middleware.JWTMiddleware())

	// Reads are open to every authenticated role
	streamers.GET("", streamerController.ListStreamers)
	streamers.GET("/:id", streamerController.GetStreamer)
	streamers.GET("/:id/invite-qr", streamerController.InviteQR)

	// Writes need manager or admin
	writes := e.Group("/api/streamers")
	writes.Use(middleware.JWTMiddleware())
	writes.Use(middleware.RequireRole(models.RoleAdmin, models.RoleManager))
	writes.POST("", streamerController.CreateStreamer)
	writes.PUT("/:id", streamerController.UpdateStreamer)
	writes.DELETE("/:id", streamerController.DeleteStreamer)
	writes.POST("/:id/avatar", streamerController.UploadAvatar)
	writes.POST("/:id/highlight", streamerController.UploadHighlightClip)
}

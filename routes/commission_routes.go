package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/controllers"
	"github.com/streamdesk/agency_backend/middleware"
	"github.com/streamdesk/agency_backend/models"
)

// RegisterCommissionRoutes wires commission and payout endpoints
func RegisterCommissionRoutes(e *echo.Echo, commissionController *controllers.CommissionController) {
	commissions := e.Group("/api/commissions")
	commissions.Use(middleware.JWTMiddleware())

	commissions.GET("", commissionController.ListCommissions)
	commissions.GET("/:id", commissionController.GetCommission)
	commissions.GET("/summary", commissionController.PayoutSummary)

	writes := e.Group("/api/commissions")
	writes.Use(middleware.JWTMiddleware())
	writes.Use(middleware.RequireRole(models.RoleAdmin, models.RoleManager))
	writes.POST("", commissionController.CreateCommission)
	writes.POST("/:id/pay", commissionController.MarkPaid)
	writes.POST("/:id/fail", commissionController.MarkFailed)
}

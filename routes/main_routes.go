package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/controllers"
	"github.com/streamdesk/agency_backend/middleware"
	"github.com/streamdesk/agency_backend/utils"
	ws "github.com/streamdesk/agency_backend/websocket"
)

// RegisterReportRoutes wires the earnings report endpoints
func RegisterReportRoutes(e *echo.Echo, reportController *controllers.ReportController) {
	reports := e.Group("/api/reports")
	reports.Use(middleware.JWTMiddleware())

	reports.GET("", reportController.ListReports)
	reports.GET("/:streamerId/:month", reportController.GetReport)
	reports.POST("/generate", reportController.GenerateReport)
}

// RegisterWebSocketRoute wires the dashboard event stream. The connection
// itself is public; clients authenticate with an AUTH message.
func RegisterWebSocketRoute(e *echo.Echo, hub *ws.Hub) {
	e.GET("/api/ws", func(c echo.Context) error {
		return ws.HandleWebSocket(c, hub, func(token string) (string, error) {
			claims, err := utils.ParseClaims(token)
			if err != nil {
				return "", err
			}
			return claims.UserID, nil
		})
	})
}

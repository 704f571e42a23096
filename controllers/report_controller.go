package controllers

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/models"
	"github.com/streamdesk/agency_backend/repositories"
	"github.com/streamdesk/agency_backend/services"
	"github.com/streamdesk/agency_backend/utils"
)

var monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

type ReportController struct {
	reports     *repositories.ReportRepository
	streamers   *repositories.StreamerRepository
	commissions *repositories.CommissionRepository
	redis       *redis.Client
}

func NewReportController(
	reports *repositories.ReportRepository,
	streamers *repositories.StreamerRepository,
	commissions *repositories.CommissionRepository,
	redisClient *redis.Client,
) *ReportController {
	return &ReportController{
		reports:     reports,
		streamers:   streamers,
		commissions: commissions,
		redis:       redisClient,
	}
}

// GenerateReport rolls a streamer's commissions for a month into a report
// document. Regenerating overwrites the previous report.
func (rc *ReportController) GenerateReport(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	streamerID := c.QueryParam("streamerId")
	month := c.QueryParam("month")
	if streamerID == "" || !monthRegex.MatchString(month) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "streamerId and month (YYYY-MM) query parameters are required",
		})
	}

	streamer, err := rc.streamers.Get(ctx, streamerID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Streamer not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
			Data:    err.Error(),
		})
	}

	commissions, err := rc.commissions.ListByMonth(ctx, streamerID, month)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load commissions",
			Data:    err.Error(),
		})
	}

	report := services.BuildMonthlyReport(streamer, month, commissions)
	if err := rc.reports.Save(ctx, report); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save report",
			Data:    err.Error(),
		})
	}

	utils.CacheInvalidate(ctx, rc.redis, "reports:")

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Report generated successfully",
		Data:    report,
	})
}

// GetReport returns one streamer's monthly report. Cached in Redis for
// 10 minutes.
func (rc *ReportController) GetReport(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	streamerID := c.Param("streamerId")
	month := c.Param("month")
	if !monthRegex.MatchString(month) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "month must be formatted as YYYY-MM",
		})
	}

	cacheKey := fmt.Sprintf("reports:%s:%s", streamerID, month)

	var cached models.Report
	if err := utils.CacheGetJSON(ctx, rc.redis, cacheKey, &cached); err == nil {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Report fetched successfully",
			Data:    cached,
		})
	}

	report, err := rc.reports.Get(ctx, streamerID, month)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Report not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
			Data:    err.Error(),
		})
	}

	utils.CacheSetJSON(ctx, rc.redis, cacheKey, report, 10*time.Minute)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Report fetched successfully",
		Data:    report,
	})
}

// ListReports returns every report generated for a month
func (rc *ReportController) ListReports(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	month := c.QueryParam("month")
	if !monthRegex.MatchString(month) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "month query parameter (YYYY-MM) is required",
		})
	}

	reports, err := rc.reports.ListByMonth(ctx, month)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to list reports",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Reports fetched successfully",
		Data:    reports,
	})
}

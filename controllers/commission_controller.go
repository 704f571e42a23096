package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/models"
	"github.com/streamdesk/agency_backend/repositories"
	"github.com/streamdesk/agency_backend/services"
	"github.com/streamdesk/agency_backend/utils"
	ws "github.com/streamdesk/agency_backend/websocket"
)

type CommissionController struct {
	commissions *repositories.CommissionRepository
	streamers   *repositories.StreamerRepository
	agencies    *repositories.AgencyRepository
	users       *repositories.UserRepository
	redis       *redis.Client
	hub         *ws.Hub
}

func NewCommissionController(
	commissions *repositories.CommissionRepository,
	streamers *repositories.StreamerRepository,
	agencies *repositories.AgencyRepository,
	users *repositories.UserRepository,
	redisClient *redis.Client,
	hub *ws.Hub,
) *CommissionController {
	return &CommissionController{
		commissions: commissions,
		streamers:   streamers,
		agencies:    agencies,
		users:       users,
		redis:       redisClient,
		hub:         hub,
	}
}

// CreateCommission records a new pending commission. The commission amount
// is always computed server side.
func (cc *CommissionController) CreateCommission(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CommissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Data:    err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    err.Error(),
		})
	}
	if problems := utils.ValidateCommission(&req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Commission payload is invalid",
			Data:    problems,
		})
	}

	streamer, err := cc.streamers.Get(ctx, req.StreamerID)
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

	// The agency default rate applies when the request omits one
	var agency *models.Agency
	if streamer.AgencyID != "" {
		agency, err = cc.agencies.Get(ctx, streamer.AgencyID)
		if err != nil && err != repositories.ErrNotFound {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Database error",
				Data:    err.Error(),
			})
		}
	}

	rate := services.EffectiveRate(req.Rate, agency)

	commission := &models.Commission{
		StreamerID:       req.StreamerID,
		App:              utils.SanitizeInput(req.App),
		BaseAmount:       req.BaseAmount,
		Rate:             rate,
		CommissionAmount: services.CalculateCommission(req.BaseAmount, rate),
		Status:           models.CommissionStatusPending,
	}

	id, err := cc.commissions.Create(ctx, commission)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create commission",
			Data:    err.Error(),
		})
	}

	cc.invalidateCaches(ctx, req.StreamerID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Commission created successfully",
		Data:    map[string]interface{}{"id": id, "commission": commission},
	})
}

// GetCommission returns one commission by ID
func (cc *CommissionController) GetCommission(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	commission, err := cc.commissions.Get(ctx, c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Commission not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission fetched successfully",
		Data:    commission,
	})
}

// ListCommissions returns commissions filtered by streamerId and/or status
func (cc *CommissionController) ListCommissions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	streamerID := c.QueryParam("streamerId")
	statusFilter := c.QueryParam("status")

	var commissions []*models.Commission
	var err error

	if streamerID != "" {
		commissions, err = cc.commissions.ListByStreamer(ctx, streamerID, statusFilter)
	} else if statusFilter != "" {
		commissions, err = cc.commissions.ListByStatus(ctx, statusFilter)
	} else {
		commissions, err = cc.commissions.ListAll(ctx)
	}

	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to list commissions",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commissions fetched successfully",
		Data:    commissions,
	})
}

// MarkPaid transitions a pending commission to paid, notifies the streamer
// by email and pushes a dashboard event
func (cc *CommissionController) MarkPaid(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")

	commission, err := cc.commissions.Get(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Commission not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
			Data:    err.Error(),
		})
	}

	if commission.Status != models.CommissionStatusPending {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: fmt.Sprintf("Commission is %s, only pending commissions can be paid", commission.Status),
		})
	}

	now := time.Now()
	err = cc.commissions.Update(ctx, id, map[string]interface{}{
		"status": models.CommissionStatusPaid,
		"paidAt": now,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update commission",
			Data:    err.Error(),
		})
	}

	commission.Status = models.CommissionStatusPaid
	commission.PaidAt = &now

	// Notify the streamer; payout stands even when the email fails
	if streamer, err := cc.streamers.Get(ctx, commission.StreamerID); err == nil {
		if err := utils.SendPayoutEmail(streamer, commission); err != nil {
			log.Printf("Payout email failed for commission %s: %v", id, err)
		}

		// Confirm on the acting manager's device as well
		if userID, ok := c.Get("userID").(string); ok && userID != "" {
			if user, err := cc.users.Get(ctx, userID); err == nil && user.FCMToken != "" {
				title := "Payout sent"
				body := fmt.Sprintf("Commission for %s has been paid", streamer.Name)
				if err := utils.SendPushNotification(ctx, user.FCMToken, title, body); err != nil {
					log.Printf("Push notification failed for commission %s: %v", id, err)
				}
			}
		}
	}

	if cc.hub != nil {
		cc.hub.Broadcast(ws.Event{
			Type:    ws.EventCommissionPaid,
			Message: fmt.Sprintf("Commission %s paid", id),
			Data:    commission,
		})
	}

	cc.invalidateCaches(ctx, commission.StreamerID)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission marked as paid",
		Data:    commission,
	})
}

// MarkFailed records a failed payout with its classifier tag
func (cc *CommissionController) MarkFailed(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	commission, err := cc.commissions.Get(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Commission not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
			Data:    err.Error(),
		})
	}

	if commission.Status == models.CommissionStatusPaid {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Paid commissions cannot be marked as failed",
		})
	}

	tag := utils.ClassifyErrorMessage(req.Reason)

	err = cc.commissions.Update(ctx, id, map[string]interface{}{
		"status":     models.CommissionStatusFailed,
		"failureTag": tag,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update commission",
			Data:    err.Error(),
		})
	}

	cc.invalidateCaches(ctx, commission.StreamerID)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission marked as failed",
		Data:    map[string]string{"failureTag": tag},
	})
}

// PayoutSummary returns the monthly totals for one streamer. Cached in
// Redis for 5 minutes.
func (cc *CommissionController) PayoutSummary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	streamerID := c.QueryParam("streamerId")
	month := c.QueryParam("month")
	if streamerID == "" || month == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "streamerId and month query parameters are required",
		})
	}

	cacheKey := fmt.Sprintf("payouts:%s:%s", streamerID, month)

	var cached models.PayoutSummary
	if err := utils.CacheGetJSON(ctx, cc.redis, cacheKey, &cached); err == nil {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Payout summary fetched successfully",
			Data:    cached,
		})
	}

	commissions, err := cc.commissions.ListByMonth(ctx, streamerID, month)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Failed to load commissions, check the month format (YYYY-MM)",
			Data:    err.Error(),
		})
	}

	summary := services.BuildPayoutSummary(streamerID, month, commissions)
	utils.CacheSetJSON(ctx, cc.redis, cacheKey, summary, 5*time.Minute)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout summary fetched successfully",
		Data:    summary,
	})
}

func (cc *CommissionController) invalidateCaches(ctx context.Context, streamerID string) {
	utils.CacheInvalidate(ctx, cc.redis, "payouts:"+streamerID)
	utils.CacheInvalidate(ctx, cc.redis, "reports:")
}

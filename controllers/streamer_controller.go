package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/models"
	"github.com/streamdesk/agency_backend/repositories"
	"github.com/streamdesk/agency_backend/security"
	"github.com/streamdesk/agency_backend/utils"
)

type StreamerController struct {
	streamers *repositories.StreamerRepository
	redis     *redis.Client
}

func NewStreamerController(streamers *repositories.StreamerRepository, redisClient *redis.Client) *StreamerController {
	return &StreamerController{streamers: streamers, redis: redisClient}
}

// bindStreamerRequest binds, validates and sanitizes the payload
func (sc *StreamerController) bindStreamerRequest(c echo.Context) (*models.StreamerRequest, *models.Response) {
	var req models.StreamerRequest
	if err := c.Bind(&req); err != nil {
		return nil, &models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Data:    err.Error(),
		}
	}

	if err := c.Validate(&req); err != nil {
		return nil, &models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    err.Error(),
		}
	}

	if problems := utils.ValidateStreamer(&req); len(problems) > 0 {
		return nil, &models.Response{
			Status:  http.StatusBadRequest,
			Message: "Streamer payload is invalid",
			Data:    problems,
		}
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return nil, &models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email",
		}
	}
	req.Email = email

	if req.Phone != "" {
		phone, err := utils.SanitizePhone(req.Phone)
		if err != nil {
			return nil, &models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid phone number",
			}
		}
		req.Phone = phone
	}

	req.Name = utils.SanitizeInput(req.Name)
	req.Country = strings.ToUpper(strings.TrimSpace(req.Country))
	if req.Status == "" {
		req.Status = models.StreamerStatusPending
	}

	return &req, nil
}

// CreateStreamer adds a new talent to the roster
func (sc *StreamerController) CreateStreamer(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, errResp := sc.bindStreamerRequest(c)
	if errResp != nil {
		return c.JSON(errResp.Status, errResp)
	}

	// Reject duplicate emails
	if _, err := sc.streamers.FindByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "A streamer with this email already exists",
		})
	} else if err != repositories.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
			Data:    err.Error(),
		})
	}

	streamer := &models.Streamer{
		Name:     req.Name,
		Email:    req.Email,
		Country:  req.Country,
		Level:    req.Level,
		Earnings: req.Earnings,
		Phone:    req.Phone,
		Status:   req.Status,
		AgencyID: req.AgencyID,
	}

	id, err := sc.streamers.Create(ctx, streamer)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create streamer",
			Data:    err.Error(),
		})
	}

	utils.CacheInvalidate(ctx, sc.redis, "reports:")

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Streamer created successfully",
		Data:    map[string]interface{}{"id": id, "streamer": streamer},
	})
}

// GetStreamer returns one streamer by ID
func (sc *StreamerController) GetStreamer(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	streamer, err := sc.streamers.Get(ctx, c.Param("id"))
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

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Streamer fetched successfully",
		Data:    streamer,
	})
}

// ListStreamers returns streamers filtered by optional status/agencyId
// query parameters
func (sc *StreamerController) ListStreamers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	streamers, err := sc.streamers.List(ctx, c.QueryParam("agencyId"), c.QueryParam("status"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to list streamers",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Streamers fetched successfully",
		Data:    streamers,
	})
}

// UpdateStreamer overwrites a streamer's fields
func (sc *StreamerController) UpdateStreamer(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, errResp := sc.bindStreamerRequest(c)
	if errResp != nil {
		return c.JSON(errResp.Status, errResp)
	}

	id := c.Param("id")

	err := sc.streamers.Update(ctx, id, map[string]interface{}{
		"name":     req.Name,
		"email":    req.Email,
		"country":  req.Country,
		"level":    req.Level,
		"earnings": req.Earnings,
		"phone":    req.Phone,
		"status":   req.Status,
		"agencyId": req.AgencyID,
	})
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Streamer not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update streamer",
			Data:    err.Error(),
		})
	}

	utils.CacheInvalidate(ctx, sc.redis, "reports:")

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Streamer updated successfully",
	})
}

// DeleteStreamer removes a streamer from the roster
func (sc *StreamerController) DeleteStreamer(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sc.streamers.Delete(ctx, c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete streamer",
			Data:    err.Error(),
		})
	}

	utils.CacheInvalidate(ctx, sc.redis, "reports:")

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Streamer deleted successfully",
	})
}

// UploadAvatar stores a resized avatar image for the streamer
func (sc *StreamerController) UploadAvatar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id := c.Param("id")

	if _, err := sc.streamers.Get(ctx, id); err != nil {
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

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Missing avatar file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to open uploaded file",
		})
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
	}

	avatarURL, err := utils.SaveAvatar(fileData, fileHeader.Filename)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if err := sc.streamers.Update(ctx, id, map[string]interface{}{"avatarUrl": avatarURL}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save avatar URL",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Avatar uploaded successfully",
		Data:    map[string]string{"avatarUrl": avatarURL},
	})
}

// UploadHighlightClip stores a highlight video and its poster frame
func (sc *StreamerController) UploadHighlightClip(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	id := c.Param("id")

	if _, err := sc.streamers.Get(ctx, id); err != nil {
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

	fileHeader, err := c.FormFile("clip")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Missing clip file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to open uploaded file",
		})
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
	}

	clipURL, thumbURL, err := utils.SaveHighlightClip(fileData, fileHeader.Filename)
	if err != nil && clipURL == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Highlight clip uploaded successfully",
		Data: map[string]string{
			"clipUrl":      clipURL,
			"thumbnailUrl": thumbURL,
		},
	})
}

// InviteQR renders the streamer onboarding link as a QR code PNG
func (sc *StreamerController) InviteQR(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")

	if _, err := sc.streamers.Get(ctx, id); err != nil {
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

	baseURL := os.Getenv("ONBOARDING_BASE_URL")
	if baseURL == "" {
		baseURL = "https://app.streamdesk.io/onboarding"
	}

	inviteToken, err := security.GenerateInviteToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate invite token",
			Data:    err.Error(),
		})
	}

	pngData, err := utils.GenerateInviteQR(fmt.Sprintf("%s?streamer=%s&token=%s", baseURL, id, inviteToken))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
			Data:    err.Error(),
		})
	}

	return c.Blob(http.StatusOK, "image/png", pngData)
}

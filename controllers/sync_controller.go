package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/models"
	"github.com/streamdesk/agency_backend/repositories"
	"github.com/streamdesk/agency_backend/services"
)

type SyncController struct {
	sync *services.SyncService
}

func NewSyncController(sync *services.SyncService) *SyncController {
	return &SyncController{sync: sync}
}

// RunSync triggers a full sheets mirror run. Admin only.
func (sc *SyncController) RunSync(c echo.Context) error {
	// Full mirror over both collections can take a while
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	status, err := sc.sync.Run(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Sheets sync failed",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sheets sync finished",
		Data:    status,
	})
}

// GetSyncStatus returns the outcome of the last sync run
func (sc *SyncController) GetSyncStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, err := sc.sync.LastStatus(ctx)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "No sync has run yet",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load sync status",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sync status fetched successfully",
		Data:    status,
	})
}

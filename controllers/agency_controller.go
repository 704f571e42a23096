package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/models"
	"github.com/streamdesk/agency_backend/repositories"
	"github.com/streamdesk/agency_backend/utils"
)

type AgencyController struct {
	agencies *repositories.AgencyRepository
}

func NewAgencyController(agencies *repositories.AgencyRepository) *AgencyController {
	return &AgencyController{agencies: agencies}
}

// CreateAgency registers a new agency tenant
func (ac *AgencyController) CreateAgency(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.AgencyRequest
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

	if req.Settings.DefaultCommissionRate < 0 || req.Settings.DefaultCommissionRate > 1 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "defaultCommissionRate must be between 0 and 1",
		})
	}

	agency := &models.Agency{
		Name:     utils.SanitizeInput(req.Name),
		Settings: req.Settings,
	}

	id, err := ac.agencies.Create(ctx, agency)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create agency",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Agency created successfully",
		Data:    map[string]interface{}{"id": id, "agency": agency},
	})
}

// GetAgency returns one agency by ID
func (ac *AgencyController) GetAgency(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	agency, err := ac.agencies.Get(ctx, c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Agency not found",
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
		Message: "Agency fetched successfully",
		Data:    agency,
	})
}

// ListAgencies returns all agencies
func (ac *AgencyController) ListAgencies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	agencies, err := ac.agencies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to list agencies",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Agencies fetched successfully",
		Data:    agencies,
	})
}

// UpdateAgency overwrites an agency's name and settings
func (ac *AgencyController) UpdateAgency(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.AgencyRequest
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

	if req.Settings.DefaultCommissionRate < 0 || req.Settings.DefaultCommissionRate > 1 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "defaultCommissionRate must be between 0 and 1",
		})
	}

	err := ac.agencies.Update(ctx, c.Param("id"), map[string]interface{}{
		"name":     utils.SanitizeInput(req.Name),
		"settings": req.Settings,
	})
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Agency not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update agency",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Agency updated successfully",
	})
}

// DeleteAgency removes an agency document
func (ac *AgencyController) DeleteAgency(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ac.agencies.Delete(ctx, c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete agency",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Agency deleted successfully",
	})
}

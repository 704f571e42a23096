package controllers

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamdesk/agency_backend/models"
	"github.com/streamdesk/agency_backend/security"
	"github.com/streamdesk/agency_backend/services"
	"github.com/streamdesk/agency_backend/utils"
)

// GASController proxies dashboard requests to the Apps Script deployment
type GASController struct {
	gas *services.GASService
}

func NewGASController(gas *services.GASService) *GASController {
	return &GASController{gas: gas}
}

// Proxy handles GET/POST /api/gas?action=<name>. Query parameters are
// forwarded verbatim; successful upstream bodies pass through untouched.
// Failures use the legacy {success:false, error} shape the dashboard
// expects from the Apps Script backend.
func (gc *GASController) Proxy(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	action := c.QueryParam("action")
	if action == "" {
		return c.JSON(http.StatusBadRequest, models.GASResponse{
			Success: false,
			Error:   "action query parameter is required",
		})
	}

	if !gc.gas.ActionAllowed(action) {
		return c.JSON(http.StatusForbidden, models.GASResponse{
			Success: false,
			Error:   "action is not allowed",
		})
	}

	var body []byte
	if c.Request().Method == http.MethodPost && c.Request().Body != nil {
		if ct := c.Request().Header.Get(echo.HeaderContentType); ct != "" && !security.ValidateContentType(ct) {
			return c.JSON(http.StatusUnsupportedMediaType, models.GASResponse{
				Success: false,
				Error:   "unsupported content type",
			})
		}

		var err error
		body, err = io.ReadAll(c.Request().Body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.GASResponse{
				Success: false,
				Error:   "failed to read request body",
			})
		}
	}

	statusCode, respBody, err := gc.gas.Forward(ctx, c.Request().Method, c.QueryParams(), body)
	if err != nil {
		tag := utils.ClassifyError(err)
		log.Printf("GAS proxy failed for action %s (tag=%s): %v", action, tag, err)
		return c.JSON(http.StatusBadGateway, models.GASResponse{
			Success: false,
			Error:   err.Error(),
			Tag:     tag,
		})
	}

	return c.Blob(statusCode, echo.MIMEApplicationJSON, respBody)
}

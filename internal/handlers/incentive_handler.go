package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/waterwise-labs/greywater-api/internal/errors"
	"github.com/waterwise-labs/greywater-api/internal/middleware"
	"github.com/waterwise-labs/greywater-api/internal/models"
	"github.com/waterwise-labs/greywater-api/internal/services"
)

// IncentiveHandler serves the merged incentive view for a location.
type IncentiveHandler struct {
	service services.PolicyService
}

// NewIncentiveHandler creates a new IncentiveHandler instance.
func NewIncentiveHandler(service services.PolicyService) *IncentiveHandler {
	return &IncentiveHandler{
		service: service,
	}
}

// IncentiveRequest represents the query parameters for the incentives endpoint.
type IncentiveRequest struct {
	State  string `form:"state" binding:"required"`
	County string `form:"county"`
	City   string `form:"city"`
	Sector string `form:"sector" binding:"omitempty,oneof=residential commercial"`
	View   string `form:"view" binding:"omitempty,oneof=all rebates"`
}

// IncentiveResponse represents the response for the incentives endpoint.
type IncentiveResponse struct {
	Status string                      `json:"status"`
	Sector models.Sector               `json:"sector"`
	View   string                      `json:"view"`
	Data   services.IncentiveAggregate `json:"data"`
}

// List handles GET /api/v1/incentives.
// view=all returns every eligible program across the resolved levels;
// view=rebates additionally drops grant programs, whose money funds
// projects rather than discounting purchases.
func (h *IncentiveHandler) List(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req IncentiveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	sector := models.SectorResidential
	if req.Sector != "" {
		sector = models.Sector(req.Sector)
	}
	view := req.View
	if view == "" {
		view = "all"
	}

	if log != nil {
		log.Info("Processing incentives request", map[string]interface{}{
			"state":  req.State,
			"county": req.County,
			"city":   req.City,
			"sector": sector,
			"view":   view,
		})
	}

	resolved, err := h.service.Resolve(c.Request.Context(), req.State, req.County, req.City)
	if err != nil {
		if errors.Is(err, services.ErrJurisdictionNotFound) {
			apierrors.JurisdictionNotFound(c, err.Error())
			return
		}
		apierrors.InternalServerError(c, "Failed to resolve incentive data", err)
		return
	}

	var aggregate services.IncentiveAggregate
	if view == "rebates" {
		aggregate = services.AggregateRebates(resolved, sector)
	} else {
		aggregate = services.AggregateIncentives(resolved, sector)
	}

	c.JSON(http.StatusOK, IncentiveResponse{
		Status: "success",
		Sector: sector,
		View:   view,
		Data:   aggregate,
	})
}

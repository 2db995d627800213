package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/waterwise-labs/greywater-api/internal/errors"
	"github.com/waterwise-labs/greywater-api/internal/middleware"
	"github.com/waterwise-labs/greywater-api/internal/models"
	"github.com/waterwise-labs/greywater-api/internal/repository"
	"github.com/waterwise-labs/greywater-api/internal/slug"
)

// HierarchyHandler serves the state/county/city navigation tree.
type HierarchyHandler struct {
	repo repository.HierarchyRepository
}

// NewHierarchyHandler creates a new HierarchyHandler instance.
func NewHierarchyHandler(repo repository.HierarchyRepository) *HierarchyHandler {
	return &HierarchyHandler{
		repo: repo,
	}
}

// HierarchyRequest represents the query parameters for the hierarchy endpoint.
type HierarchyRequest struct {
	Level      string `form:"level" binding:"required,oneof=states counties cities"`
	StateCode  string `form:"stateCode"`
	ParentID   string `form:"parentId"`
	ParentType string `form:"parentType" binding:"omitempty,oneof=state county"`
}

// HierarchyResponse represents the response for the hierarchy endpoint.
type HierarchyResponse struct {
	Status string                `json:"status"`
	Data   []models.Jurisdiction `json:"data"`
	Count  int                   `json:"count"`
}

// List handles GET /api/v1/hierarchy.
// level=states needs no scoping; level=counties needs stateCode;
// level=cities needs parentId + parentType since cities can hang off a
// county or directly off a state.
func (h *HierarchyHandler) List(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req HierarchyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	if log != nil {
		log.Info("Processing hierarchy request", map[string]interface{}{
			"level":       req.Level,
			"state_code":  req.StateCode,
			"parent_id":   req.ParentID,
			"parent_type": req.ParentType,
		})
	}

	var (
		data []models.Jurisdiction
		err  error
	)

	switch req.Level {
	case "states":
		data, err = h.repo.ListStates(c.Request.Context())

	case "counties":
		if req.StateCode == "" {
			apierrors.BadRequest(c, "stateCode is required for level=counties", nil)
			return
		}
		stateCode := slug.StateCodeFromSlug(req.StateCode)
		if stateCode == "" {
			apierrors.JurisdictionNotFound(c, "Unknown state: "+req.StateCode)
			return
		}
		data, err = h.repo.ListCounties(c.Request.Context(), stateCode)

	case "cities":
		if req.ParentID == "" || req.ParentType == "" {
			apierrors.BadRequest(c, "parentId and parentType are required for level=cities", nil)
			return
		}
		data, err = h.repo.ListCities(c.Request.Context(), req.ParentID, models.JurisdictionLevel(req.ParentType))
	}

	if err != nil {
		apierrors.InternalServerError(c, "Failed to query jurisdiction hierarchy", err)
		return
	}

	c.JSON(http.StatusOK, HierarchyResponse{
		Status: "success",
		Data:   data,
		Count:  len(data),
	})
}
